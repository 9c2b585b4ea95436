package formula_test

import (
	"testing"

	"github.com/cernflow/tformula/formula"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSinOverX(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f1", "sin(x)/x")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 1, f.NDim())
	assert.Equal(t, 0, f.NPar())

	v, err := f.Eval1(1.0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.8414709848, v, 1e-9)
}

func TestLinearCombinationOfSinAndExp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f2", "[0]*sin(x)+[1]*exp(-[2]*x)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 1, f.NDim())
	assert.Equal(t, 3, f.NPar())

	f.SetParameters([]float64{1, 2, 0.5})
	v, err := f.Eval1(1.0)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0545323042, v, 1e-9)
}

func TestGausFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f3", "gaus(0)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 100, f.Number())

	f.SetParameters([]float64{1, 0, 1})
	v, err := f.Eval1(0)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	v, err = f.Eval1(1)
	assert.NoError(t, err)
	assert.InDelta(t, 0.6065306597, v, 1e-9)
}

func TestPolNFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f4", "pol3(2)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 303, f.Number())

	f.SetParameters([]float64{0, 0, 1, 1, 1, 1})
	v, err := f.Eval1(2)
	assert.NoError(t, err)
	assert.InDelta(t, 15.0, v, 1e-9)
}

func TestXyGausFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f5", "xygaus(0)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 2, f.NDim())

	f.SetParameters([]float64{1, 0, 1, 0, 1})
	v, err := f.Eval2(0, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestLinearCompositionOperator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f6", "x++y")
	assert.NoError(t, err)
	assert.True(t, f.Ready())
	assert.Equal(t, 2, f.LinearPartCount())

	f.SetParameters([]float64{3, 4})
	v, err := f.Eval2(1, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 7.0, v, 1e-9)
}

func TestUnresolvedFunctorIsNotReady(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f7", "mysteryFn(x)")
	assert.NoError(t, err)
	assert.False(t, f.Ready())
	assert.NotEmpty(t, f.Unresolved())

	_, err = f.EvalCurrent()
	assert.Error(t, err)
}

func TestDirectoryRejectsReservedName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	dir := formula.NewDirectory()
	f, err := formula.New(dir, "x", "1+1")
	assert.NoError(t, err)
	_, ok := dir.Get("x")
	assert.False(t, ok)
	assert.NotNil(t, f)
}

func TestXyGausFamilyVariableAndParameterNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f8", "xygaus(0)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())

	if diff := cmp.Diff([]string{"x", "y"}, f.VariableNames()); diff != "" {
		t.Errorf("variable names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0", "1", "2", "3", "4"}, f.ParameterNames()); diff != "" {
		t.Errorf("parameter names mismatch (-want +got):\n%s", diff)
	}
}

func TestSetParameterNameRewritesOriginalAndSurvivesClone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	f, err := formula.New(nil, "f9", "[0]*sin(x)+[1]*exp(-[2]*x)")
	assert.NoError(t, err)
	assert.True(t, f.Ready())

	assert.NoError(t, f.SetParameterName(1, "amplitude"))
	assert.Equal(t, "[0]*sin(x)+[amplitude]*exp(-[2]*x)", f.Original())

	clone, err := f.Clone()
	assert.NoError(t, err)
	assert.True(t, clone.Ready())
	assert.Contains(t, clone.ParameterNames(), "amplitude")
}

func TestDirectoryInlinesNestedFormula(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.formula")
	defer teardown()

	dir := formula.NewDirectory()
	_, err := formula.New(dir, "base", "sin(x)")
	assert.NoError(t, err)

	f, err := formula.New(dir, "outer", "base+1")
	assert.NoError(t, err)
	assert.True(t, f.Ready())

	v, err := f.Eval1(0)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}
