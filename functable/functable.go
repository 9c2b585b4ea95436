/*
Package functable implements the function-alias table and the qualified
call dispatcher the evaluator's interpreted back end uses.

The alias table maps short call names (as typed by a formula's author,
e.g. "sin") to fully qualified names ("TMath::Sin"); the resolver (C4)
rewrites call sites through this table. The dispatcher then evaluates a
qualified call by name against a vector of already-evaluated arguments.
*/
package functable

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.functable")
}

// Aliases is the short-name -> qualified-name function-alias table. It
// is keyed by the short spelling a formula author types and stores the
// fully qualified name the resolver rewrites call sites to.
type Aliases struct {
	qualified map[string]string
}

// NewAliases returns the default alias table, grounded on TFormula.cxx's
// funShortcuts array.
func NewAliases() *Aliases {
	return &Aliases{
		qualified: map[string]string{
			"sin":      "TMath::Sin",
			"cos":      "TMath::Cos",
			"exp":      "TMath::Exp",
			"log":      "TMath::Log",
			"tan":      "TMath::Tan",
			"sinh":     "TMath::SinH",
			"cosh":     "TMath::CosH",
			"tanh":     "TMath::TanH",
			"asin":     "TMath::ASin",
			"acos":     "TMath::ACos",
			"atan":     "TMath::ATan",
			"atan2":    "TMath::ATan2",
			"sqrt":     "TMath::Sqrt",
			"ceil":     "TMath::Ceil",
			"floor":    "TMath::Floor",
			"pow":      "TMath::Power",
			"binomial": "TMath::Binomial",
			"abs":      "TMath::Abs",
		},
	}
}

// Qualify returns the fully qualified name for a short call name and
// whether it is known.
func (a *Aliases) Qualify(short string) (string, bool) {
	q, ok := a.qualified[short]
	return q, ok
}

// Has is a predicate: is short a known alias?
func (a *Aliases) Has(short string) bool {
	_, ok := a.qualified[short]
	return ok
}

// Override replaces or adds a short-name -> qualified-name mapping, for
// site-local configuration (see the config package).
func (a *Aliases) Override(short, qualified string) {
	a.qualified[short] = qualified
}

// ShortNames returns the set of short names known to this table, in no
// particular order; useful for the macro rewriter, which must not treat
// an alias short name as an ordinary bare functor.
func (a *Aliases) ShortNames() []string {
	names := make([]string, 0, len(a.qualified))
	for k := range a.qualified {
		names = append(names, k)
	}
	return names
}

// Fn is a qualified, arity-checked numeric function.
type Fn struct {
	NArgs int
	Call  func(args []float64) float64
}

// Dispatcher evaluates qualified calls (e.g. "TMath::Sin") against a
// fixed built-in table: the numeric-function dispatcher the interpreted
// back end calls into.
type Dispatcher struct {
	fns map[string]Fn
}

// NewDispatcher returns the built-in dispatcher, covering the
// transcendental set referenced by the macro rewriter (C2) plus the
// contents of the default alias table.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{fns: make(map[string]Fn)}
	one := func(f func(float64) float64) func([]float64) float64 {
		return func(a []float64) float64 { return f(a[0]) }
	}
	d.fns["TMath::Sin"] = Fn{1, one(math.Sin)}
	d.fns["TMath::Cos"] = Fn{1, one(math.Cos)}
	d.fns["TMath::Exp"] = Fn{1, one(math.Exp)}
	d.fns["TMath::Log"] = Fn{1, one(math.Log)}
	d.fns["TMath::Tan"] = Fn{1, one(math.Tan)}
	d.fns["TMath::SinH"] = Fn{1, one(math.Sinh)}
	d.fns["TMath::CosH"] = Fn{1, one(math.Cosh)}
	d.fns["TMath::TanH"] = Fn{1, one(math.Tanh)}
	d.fns["TMath::ASin"] = Fn{1, one(math.Asin)}
	d.fns["TMath::ACos"] = Fn{1, one(math.Acos)}
	d.fns["TMath::ATan"] = Fn{1, one(math.Atan)}
	d.fns["TMath::Sqrt"] = Fn{1, one(math.Sqrt)}
	d.fns["TMath::Ceil"] = Fn{1, one(math.Ceil)}
	d.fns["TMath::Floor"] = Fn{1, one(math.Floor)}
	d.fns["TMath::Abs"] = Fn{1, one(math.Abs)}
	d.fns["TMath::ATan2"] = Fn{2, func(a []float64) float64 { return math.Atan2(a[0], a[1]) }}
	d.fns["TMath::Power"] = Fn{2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }}
	d.fns["TMath::Binomial"] = Fn{2, func(a []float64) float64 { return binomial(a[0], a[1]) }}
	d.fns["TMath::Landau"] = Fn{4, func(a []float64) float64 {
		norm := a[3] != 0
		return landau(a[0], a[1], a[2], norm)
	}}
	return d
}

// Has is a predicate: can qualified be dispatched with nargs arguments?
func (d *Dispatcher) Has(qualified string, nargs int) bool {
	fn, ok := d.fns[qualified]
	return ok && fn.NArgs == nargs
}

// Call evaluates a qualified call. An unknown qualified name is a
// compile-time error elsewhere in the pipeline; Call itself assumes
// that has already been rejected and returns an error here rather than
// silently misbehaving if that invariant is ever violated.
func (d *Dispatcher) Call(qualified string, args []float64) (float64, error) {
	fn, ok := d.fns[qualified]
	if !ok {
		tracer().Errorf("call to unknown qualified function %s", qualified)
		return 0, fmt.Errorf("functable: unknown qualified call %q", qualified)
	}
	if len(args) != fn.NArgs {
		tracer().Errorf("%s called with %d args, wants %d", qualified, len(args), fn.NArgs)
		return 0, fmt.Errorf("functable: %s wants %d args, got %d", qualified, fn.NArgs, len(args))
	}
	return fn.Call(args), nil
}

func binomial(n, k float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	// log-gamma based to stay numerically sane for larger n
	lg, _ := math.Lgamma(n + 1)
	lk, _ := math.Lgamma(k + 1)
	lnk, _ := math.Lgamma(n - k + 1)
	return math.Exp(lg - lk - lnk)
}
