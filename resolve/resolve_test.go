package resolve_test

import (
	"testing"

	"github.com/cernflow/tformula/functable"
	"github.com/cernflow/tformula/functor"
	"github.com/cernflow/tformula/resolve"
	"github.com/cernflow/tformula/symbols"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func freshTables() *resolve.Tables {
	vars := symbols.NewTable("variable")
	for slot, name := range symbols.DefaultObservables {
		vars.EnsureSlot(name, slot)
	}
	return &resolve.Tables{
		Variables:  vars,
		Parameters: symbols.NewTable("parameter"),
		Constants:  symbols.NewConstants(),
		Aliases:    functable.NewAliases(),
	}
}

func TestResolveSimpleVariableExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	wrapped, functors := functor.Extract("sin(x)/x")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), nil)
	assert.NoError(t, err)
	assert.True(t, outcome.Ready)
	assert.Equal(t, "TMath::Sin(x[0])/x[0]", outcome.Canonical)
	assert.Equal(t, 1, outcome.NDim)
}

func TestResolveParameterLiteralGetsSlot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	wrapped, functors := functor.Extract("[0]*sin(x)+[1]*exp(-[2]*x)")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), nil)
	assert.NoError(t, err)
	assert.True(t, outcome.Ready)
	assert.Equal(t, 3, tables.Parameters.Count())
	assert.Contains(t, outcome.Canonical, "p[0]")
	assert.Contains(t, outcome.Canonical, "p[1]")
	assert.Contains(t, outcome.Canonical, "p[2]")
}

func TestResolveUnknownCallStaysUnresolved(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	wrapped, functors := functor.Extract("bogus(x)")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), nil)
	assert.NoError(t, err)
	assert.False(t, outcome.Ready)
	assert.Equal(t, []string{"bogus"}, outcome.Unresolved)
}

type stubLookup map[string]string

func (s stubLookup) Lookup(name string) (string, bool) {
	raw, ok := s[name]
	return raw, ok
}

func TestResolveInlinesNestedFormula(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	lookup := stubLookup{"base": "sin(x)"}
	wrapped, functors := functor.Extract("base+1")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), lookup)
	assert.NoError(t, err)
	assert.True(t, outcome.Ready)
	assert.Contains(t, outcome.Canonical, "TMath::Sin(x[0])")
}

func TestResolveDetectsCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	lookup := stubLookup{"a": "b+1", "b": "a+1"}
	wrapped, functors := functor.Extract("a")
	tables := freshTables()
	_, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), lookup)
	assert.Error(t, err)
}

func TestResolveIndexedObservableBackfillsNamedSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	wrapped, functors := functor.Extract("x[4]+x[7]")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), nil)
	assert.NoError(t, err)
	assert.True(t, outcome.Ready)
	assert.Equal(t, "x[4]+x[7]", outcome.Canonical)
	assert.Equal(t, 8, outcome.NDim)

	for slot := 4; slot <= 7; slot++ {
		e := tables.Variables.EntryBySlot(slot)
		if assert.NotNil(t, e) {
			assert.Equal(t, symbols.IndexedName(slot), e.Name)
		}
	}
}

func TestResolvePurgesUnusedDefaultVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.resolve")
	defer teardown()

	wrapped, functors := functor.Extract("x+1")
	tables := freshTables()
	outcome, err := resolve.Resolve(wrapped, functors, tables, functable.NewDispatcher(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.NDim)
	assert.ElementsMatch(t, []string{"x"}, tables.Variables.Names())
}
