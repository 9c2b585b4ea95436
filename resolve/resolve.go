/*
Package resolve implements the symbol-resolution stage (C4): it binds
every functor the extractor found against the variable, parameter,
constant and function-alias tables (and, for bare names, against an
external directory of nested formulas), rewriting the text in place
into the canonical form the evaluator consumes.

Resolution order for a bare name is nested-formula, then variable, then
constant, then parameter literal: the source this engine is modeled on prefers
variables over parameters when a name could be either, and that order
is preserved here.
*/
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cernflow/tformula/functable"
	"github.com/cernflow/tformula/functor"
	"github.com/cernflow/tformula/internal/errs"
	"github.com/cernflow/tformula/macro"
	"github.com/cernflow/tformula/symbols"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.resolve")
}

// Tables bundles the four symbol environments a resolution pass reads
// and writes.
type Tables struct {
	Variables  *symbols.Table
	Parameters *symbols.Table
	Constants  *symbols.Constants
	Aliases    *functable.Aliases
}

// Lookup is the minimal nested-formula directory interface the resolver
// needs: the raw (pre-macro) text of a registered formula by name. It is
// defined here, not implemented here, so this package never depends on
// the formula package that owns the real directory.
type Lookup interface {
	Lookup(name string) (raw string, ok bool)
}

// Outcome is what a resolution pass produces.
type Outcome struct {
	Canonical  string
	Ready      bool
	Unresolved []string
	NDim       int
}

// Resolve runs one full resolution pass over text and its functors.
func Resolve(text string, functors []*functor.Functor, tables *Tables, dispatcher *functable.Dispatcher, lookup Lookup) (*Outcome, error) {
	return resolveWithVisited(text, functors, tables, dispatcher, lookup, map[string]bool{})
}

func resolveWithVisited(text string, functors []*functor.Functor, tables *Tables, dispatcher *functable.Dispatcher, lookup Lookup, visited map[string]bool) (*Outcome, error) {
	var unresolved []string

	for _, f := range flatten(functors) {
		switch {
		case f.NArgs > 0:
			resolveCall(f, &text, tables, dispatcher, &unresolved)

		case f.Indexed:
			resolveIndexed(f, &text, tables)

		default:
			ok, err := resolveBare(f, &text, tables, dispatcher, lookup, visited)
			if err != nil {
				return nil, err
			}
			if !ok {
				tracer().Errorf("unresolved functor %q", f.Name)
				unresolved = append(unresolved, f.Name)
			}
		}
	}

	ndim := 0
	for _, name := range tables.Variables.Names() {
		e := tables.Variables.Entry(name)
		if e != nil && e.Found && e.Slot+1 > ndim {
			ndim = e.Slot + 1
		}
	}

	if tables.Parameters.Count() > 0 && ndim == 0 {
		tables.Variables.EnsureSlot("x", 0)
		tables.Variables.MarkFoundBySlot(0)
		ndim = 1
	}

	tables.Variables.Purge(func(e *symbols.Entry) bool { return e.Slot < ndim })

	ready := len(unresolved) == 0 && text != ""
	return &Outcome{Canonical: text, Ready: ready, Unresolved: unresolved, NDim: ndim}, nil
}

// flatten walks the functor forest depth-first so nested call arguments
// are resolved alongside their top-level siblings; every functor's
// Token() is textually unique within the full wrapped string regardless
// of nesting depth.
func flatten(functors []*functor.Functor) []*functor.Functor {
	var out []*functor.Functor
	for _, f := range functors {
		out = append(out, f)
		out = append(out, flatten(f.Args)...)
	}
	return out
}

func resolveCall(f *functor.Functor, text *string, tables *Tables, dispatcher *functable.Dispatcher, unresolved *[]string) {
	if qualified, ok := tables.Aliases.Qualify(f.Name); ok {
		*text = strings.ReplaceAll(*text, f.Name+"(", qualified+"(")
		f.Found = true
		return
	}
	if strings.Contains(f.Name, "::") {
		if dispatcher.Has(f.Name, f.NArgs) {
			f.Found = true
			return
		}
	}
	tracer().Errorf("call functor %q/%d did not resolve to any known function", f.Name, f.NArgs)
	*unresolved = append(*unresolved, f.Name)
}

func resolveIndexed(f *functor.Functor, text *string, tables *Tables) {
	for slot := 0; slot <= f.Index; slot++ {
		if tables.Variables.EntryBySlot(slot) == nil {
			tables.Variables.EnsureSlot(symbols.IndexedName(slot), slot)
		}
	}
	tables.Variables.MarkFoundBySlot(f.Index)
	*text = strings.ReplaceAll(*text, f.Token(), fmt.Sprintf("x[%d]", f.Index))
	f.Found = true
}

func resolveBare(f *functor.Functor, text *string, tables *Tables, dispatcher *functable.Dispatcher, lookup Lookup, visited map[string]bool) (bool, error) {
	name := f.Name
	token := f.Token()

	if lookup != nil {
		if raw, ok := lookup.Lookup(name); ok {
			if visited[name] {
				tracer().Errorf("cyclic reference to formula %q during inlining", name)
				return false, fmt.Errorf("%w: %s", errs.ErrCyclicReference, name)
			}
			nested := map[string]bool{name: true}
			for k := range visited {
				nested[k] = true
			}

			rewritten, err := macro.Rewrite(raw)
			if err != nil {
				return false, err
			}
			wrapped, nestedFunctors := functor.Extract(rewritten.Text)
			outcome, err := resolveWithVisited(wrapped, nestedFunctors, tables, dispatcher, lookup, nested)
			if err != nil {
				return false, err
			}
			*text = strings.ReplaceAll(*text, token, "("+outcome.Canonical+")")
			f.Found = true
			return true, nil
		}
	}

	if tables.Variables.Has(name) {
		e := tables.Variables.Entry(name)
		tables.Variables.MarkFound(name)
		*text = strings.ReplaceAll(*text, token, fmt.Sprintf("x[%d]", e.Slot))
		f.Found = true
		return true, nil
	}

	if tables.Constants.Has(name) {
		v, _ := tables.Constants.Get(name)
		*text = strings.ReplaceAll(*text, token, strconv.FormatFloat(v, 'f', -1, 64))
		f.Found = true
		return true, nil
	}

	if f.IsParamLiteral {
		if !tables.Parameters.Has(name) {
			if slot, err := strconv.Atoi(name); err == nil {
				for s := 0; s <= slot; s++ {
					if tables.Parameters.EntryBySlot(s) == nil {
						tables.Parameters.EnsureSlot(symbols.DefaultName(s), s)
					}
				}
			} else {
				tables.Parameters.Add(name, 0)
			}
		}
		e := tables.Parameters.Entry(name)
		if e == nil {
			// the slot a numeric literal names is held by a named parameter
			slot, _ := strconv.Atoi(name)
			e = tables.Parameters.EntryBySlot(slot)
		}
		e.Found = true
		*text = strings.ReplaceAll(*text, token, fmt.Sprintf("p[%d]", e.Slot))
		f.Found = true
		return true, nil
	}

	return false, nil
}
