package eval_test

import (
	"testing"

	"github.com/cernflow/tformula/eval"
	"github.com/cernflow/tformula/functable"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestEvalSinOverX(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	prog, err := eval.Compile("TMath::Sin(x[0])/x[0]", functable.NewDispatcher())
	assert.NoError(t, err)

	v, err := prog.Eval([]float64{1.0}, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 0.8414709848, v, 1e-9)
}

func TestEvalLinearCombinationWithParameters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	prog, err := eval.Compile("p[0]*TMath::Sin(x[0])+p[1]*TMath::Exp(-p[2]*x[0])", functable.NewDispatcher())
	assert.NoError(t, err)

	v, err := prog.Eval([]float64{1.0}, []float64{1, 2, 0.5})
	assert.NoError(t, err)
	assert.InDelta(t, 2.0545323042, v, 1e-9)
}

func TestEvalRightAssociativePow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	prog, err := eval.Compile("TMath::Power(2,TMath::Power(2,3))", functable.NewDispatcher())
	assert.NoError(t, err)

	v, err := prog.Eval(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 256.0, v)
}

func TestEvalShortCircuitAnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	prog, err := eval.Compile("0&&x[0]", functable.NewDispatcher())
	assert.NoError(t, err)

	v, err := prog.Eval([]float64{0}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvalComparisonYieldsOneOrZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	prog, err := eval.Compile("x[0]>1", functable.NewDispatcher())
	assert.NoError(t, err)

	v, err := prog.Eval([]float64{2}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestCompileRejectsUnknownCall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.eval")
	defer teardown()

	_, err := eval.Compile("Bogus::Nope(x[0])", functable.NewDispatcher())
	assert.Error(t, err)
}
