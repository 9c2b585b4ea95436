// Package errs holds the sentinel errors shared across the formula
// pipeline's internal packages. They are re-exported from the root
// tformula package for callers; internal packages depend on this leaf
// package directly to avoid importing the (much larger) root package.
package errs

import "errors"

var (
	ErrReservedName          = errors.New("tformula: reserved name")
	ErrUnknownDimension      = errors.New("tformula: unknown family dimension")
	ErrMissingNormalizedForm = errors.New("tformula: no normalized form")
	ErrUnresolvedFunctor     = errors.New("tformula: unresolved functor")
	ErrUnknownVariable       = errors.New("tformula: unknown variable")
	ErrUnknownParameter      = errors.New("tformula: unknown parameter")
	ErrCompileBackendFailure = errors.New("tformula: compile back end failure")
	ErrCyclicReference       = errors.New("tformula: cyclic formula reference")
)
