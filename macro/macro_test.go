package macro_test

import (
	"testing"

	"github.com/cernflow/tformula/macro"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsSpacesAndStarStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("x ** 2 + 1")
	assert.NoError(t, err)
	assert.Contains(t, r.Text, "pow(x,2)")
}

func TestPolNExpandsToExplicitSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("pol3")
	assert.NoError(t, err)
	assert.Equal(t, "[0]+[1]*pow(x,1)+[2]*pow(x,2)+[3]*pow(x,3)", r.Text)
	assert.True(t, r.Linear)
}

func TestGausExpandsToBellCurve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("gaus(0)")
	assert.NoError(t, err)
	assert.Contains(t, r.Text, "exp(-0.5*")
	assert.Equal(t, 100, r.Number)
}

func TestGausnRequiresNormalizedBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	_, err := macro.Rewrite("gausn[x,y]")
	assert.Error(t, err)
}

func TestXyGausLegacySpellingExpandsAsTwoDimensional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("xygaus")
	assert.NoError(t, err)
	assert.Contains(t, r.Text, "x")
	assert.Contains(t, r.Text, "y")
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("x^y^z")
	assert.NoError(t, err)
	assert.Equal(t, "pow(x,pow(y,z))", r.Text)
}

func TestLinearCompositionRecordsSplits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	r, err := macro.Rewrite("x++y")
	assert.NoError(t, err)
	assert.True(t, r.Linear)
	assert.Equal(t, "([0]*(x))+([1]*(y))", r.Text)
	assert.Len(t, r.LinearParts, 1)
	assert.Equal(t, "x", r.LinearParts[0].Left)
	assert.Equal(t, "y", r.LinearParts[0].Right)
}

func TestRewriteIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.macro")
	defer teardown()
	first, err := macro.Rewrite("[0]*sin(x)+[1]*exp(-[2]*x)")
	assert.NoError(t, err)
	second, err := macro.Rewrite(first.Text)
	assert.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}
