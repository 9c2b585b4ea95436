/*
Package formula is the outward-facing glue of the engine: it drives raw
text through the macro rewriter (C2), functor extractor (C3) and
resolver (C4), owns the resulting symbol tables, compiles the canonical
form into an evaluator program (C5), and exposes the construction,
parameter/variable access, linear-part, introspection and evaluation
operations a caller uses.
*/
package formula

import (
	"strings"

	"github.com/cernflow/tformula/eval"
	"github.com/cernflow/tformula/functable"
	"github.com/cernflow/tformula/functor"
	"github.com/cernflow/tformula/macro"
	"github.com/cernflow/tformula/resolve"
	"github.com/cernflow/tformula/symbols"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.formula")
}

// globalAliasOverrides and globalConstantOverrides are applied to every
// Formula's alias and constant tables as they are built, the way the
// teacher's cobra.OnInitialize(loadConfig) pushed site configuration
// into effect before any command ran. SetOverrides is normally called
// once, at startup, before the first Formula is constructed.
var (
	globalAliasOverrides    map[string]string
	globalConstantOverrides map[string]float64
)

// SetOverrides installs site-configured function-alias and constant
// overrides (see the config package), applied to every Formula built
// afterwards.
func SetOverrides(aliases map[string]string, constants map[string]float64) {
	globalAliasOverrides = aliases
	globalConstantOverrides = constants
}

// Formula is a single parsed, resolved, and (if ready) evaluable
// expression, together with the symbol tables and linear parts it owns.
type Formula struct {
	name      string
	original  string
	canonical string

	variables  *symbols.Table
	parameters *symbols.Table
	constants  *symbols.Constants
	aliases    *functable.Aliases
	dispatcher *functable.Dispatcher

	nDim       int
	number     int
	ready      bool
	unresolved []string

	linear      bool
	linearParts []*Formula

	program *eval.Program

	varValues []float64
}

// New parses, macro-rewrites, resolves and (if ready) compiles expr
// into a Formula, and registers it into dir unless name is reserved.
func New(dir *Directory, name, expr string) (*Formula, error) {
	f := &Formula{
		name:       strings.ReplaceAll(name, " ", ""),
		original:   expr,
		variables:  symbols.NewTable("variable"),
		parameters: symbols.NewTable("parameter"),
		constants:  symbols.NewConstants(),
		aliases:    functable.NewAliases(),
		dispatcher: functable.NewDispatcher(),
	}
	for slot, obs := range symbols.DefaultObservables {
		f.variables.EnsureSlot(obs, slot)
	}
	for short, qualified := range globalAliasOverrides {
		f.aliases.Override(short, qualified)
	}
	for name, value := range globalConstantOverrides {
		f.constants.Override(name, value)
	}

	if err := f.compile(dir); err != nil {
		return nil, err
	}

	if dir != nil {
		if err := dir.register(f); err != nil {
			tracer().Errorf("formula %q not registered: %v", f.name, err)
		}
	}
	return f, nil
}

// NewWithShape is the (name, nparams, ndims) convenience constructor: an
// empty-bodied formula with parameters named "0".."n-1" and nDim fixed
// variables, for a caller that wants the symbol tables pre-shaped before
// attaching its own behavior, driven purely through SetParameter and
// SetVariable rather than a parsed expression.
func NewWithShape(name string, nparams, ndims int) *Formula {
	f := &Formula{
		name:       strings.ReplaceAll(name, " ", ""),
		variables:  symbols.NewTable("variable"),
		parameters: symbols.NewTable("parameter"),
		constants:  symbols.NewConstants(),
		aliases:    functable.NewAliases(),
		dispatcher: functable.NewDispatcher(),
		nDim:       ndims,
	}
	for i := 0; i < ndims; i++ {
		obsName := symbols.DefaultName(i)
		if i < len(symbols.DefaultObservables) {
			obsName = symbols.DefaultObservables[i]
		}
		f.variables.EnsureSlot(obsName, i)
	}
	for i := 0; i < nparams; i++ {
		f.parameters.Add(symbols.DefaultName(i), 0)
	}
	return f
}

func (f *Formula) compile(dir *Directory) error {
	rewritten, err := macro.Rewrite(f.original)
	if err != nil {
		return err
	}
	f.number = rewritten.Number
	f.linear = rewritten.Linear

	wrapped, functors := functor.Extract(rewritten.Text)

	tables := &resolve.Tables{
		Variables:  f.variables,
		Parameters: f.parameters,
		Constants:  f.constants,
		Aliases:    f.aliases,
	}
	var lookup resolve.Lookup
	if dir != nil {
		lookup = dir
	}
	outcome, err := resolve.Resolve(wrapped, functors, tables, f.dispatcher, lookup)
	if err != nil {
		return err
	}

	f.canonical = outcome.Canonical
	f.ready = outcome.Ready
	f.unresolved = outcome.Unresolved
	f.nDim = outcome.NDim

	for _, split := range rewritten.LinearParts {
		left, err := New(nil, f.name+"_lin_l", split.Left)
		if err != nil {
			return err
		}
		right, err := New(nil, f.name+"_lin_r", split.Right)
		if err != nil {
			return err
		}
		f.linearParts = append(f.linearParts, left, right)
	}

	if f.ready {
		program, err := eval.Compile(f.canonical, f.dispatcher)
		if err != nil {
			tracer().P("name", f.name).Errorf("compile back end rejected canonical form: %v", err)
			f.ready = false
			return nil
		}
		f.program = program
	} else {
		tracer().P("name", f.name).Errorf("unresolved functors: %v", f.unresolved)
	}

	f.varValues = make([]float64, f.nDim)
	return nil
}

// Name returns the (space-stripped) constructor name.
func (f *Formula) Name() string { return f.name }

// Original returns the raw text passed to the constructor.
func (f *Formula) Original() string { return f.original }

// Canonical returns the resolved, evaluator-ready text.
func (f *Formula) Canonical() string { return f.canonical }

// NDim is the number of variable slots the formula actually uses.
func (f *Formula) NDim() int { return f.nDim }

// NPar is the number of parameters the formula has.
func (f *Formula) NPar() int { return f.parameters.Count() }

// Number is the classification code C2 assigned (0 if no macro fired).
func (f *Formula) Number() int { return f.number }

// Ready reports whether every functor resolved and Eval is usable.
func (f *Formula) Ready() bool { return f.ready }

// Unresolved lists the functor names that never bound to anything,
// computed on demand rather than eagerly at construction time.
func (f *Formula) Unresolved() []string {
	out := make([]string, len(f.unresolved))
	copy(out, f.unresolved)
	return out
}

// LinearPartCount returns how many "++"-produced sub-formulas this
// formula owns.
func (f *Formula) LinearPartCount() int { return len(f.linearParts) }

// LinearPart returns the i-th linear part, or nil if out of range.
func (f *Formula) LinearPart(i int) *Formula {
	if i < 0 || i >= len(f.linearParts) {
		return nil
	}
	return f.linearParts[i]
}

// Clone copies a formula's symbol tables and re-runs resolution from
// scratch, so the clone can be driven concurrently from a different
// goroutine without touching the original's tables.
func (f *Formula) Clone() (*Formula, error) {
	c, err := New(nil, f.name, f.original)
	if err != nil {
		return nil, err
	}
	for _, name := range f.parameters.Names() {
		if v, ok := f.parameters.Get(name); ok && c.parameters.Has(name) {
			c.parameters.Set(name, v)
		}
	}
	copy(c.varValues, f.varValues)
	return c, nil
}
