package tformula

import "github.com/cernflow/tformula/internal/errs"

// Sentinel errors for the formula core. Call sites wrap these with
// fmt.Errorf("...: %w", ...) and always additionally log through
// tracer() before returning: no exception ever crosses the package
// boundary, only one of these values (or nil).
var (
	ErrReservedName          = errs.ErrReservedName
	ErrUnknownDimension      = errs.ErrUnknownDimension
	ErrMissingNormalizedForm = errs.ErrMissingNormalizedForm
	ErrUnresolvedFunctor     = errs.ErrUnresolvedFunctor
	ErrUnknownVariable       = errs.ErrUnknownVariable
	ErrUnknownParameter      = errs.ErrUnknownParameter
	ErrCompileBackendFailure = errs.ErrCompileBackendFailure
	ErrCyclicReference       = errs.ErrCyclicReference
)
