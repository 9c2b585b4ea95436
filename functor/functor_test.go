package functor_test

import (
	"testing"

	"github.com/cernflow/tformula/functor"
	"github.com/stretchr/testify/assert"
)

func TestBareNameIsWrapped(t *testing.T) {
	wrapped, found := functor.Extract("x")
	assert.Equal(t, "{x}", wrapped)
	assert.Len(t, found, 1)
	assert.Equal(t, "x", found[0].Name)
	assert.Equal(t, 0, found[0].NArgs)
}

func TestParameterLiteralIsWrapped(t *testing.T) {
	wrapped, found := functor.Extract("[3]")
	assert.Equal(t, "{[3]}", wrapped)
	assert.Len(t, found, 1)
	assert.Equal(t, "3", found[0].Name)
}

func TestCallFunctorCountsArguments(t *testing.T) {
	wrapped, found := functor.Extract("pow(x,2)")
	assert.Equal(t, "pow({x},2)", wrapped)
	assert.Len(t, found, 1)
	assert.Equal(t, "pow", found[0].Name)
	assert.Equal(t, 2, found[0].NArgs)
}

func TestNestedCallsAreRecursivelyExtracted(t *testing.T) {
	_, found := functor.Extract("sin(cos(x))")
	assert.Len(t, found, 1)
	assert.Equal(t, "sin", found[0].Name)
	assert.Equal(t, 1, found[0].NArgs)
	assert.Len(t, found[0].Args, 1)
	assert.Equal(t, "cos", found[0].Args[0].Name)
}

func TestQualifiedNameIsOneFunctor(t *testing.T) {
	wrapped, found := functor.Extract("TMath::Landau(x,[1],[2],false)")
	assert.Contains(t, wrapped, "TMath::Landau(")
	assert.Len(t, found, 1)
	assert.Equal(t, "TMath::Landau", found[0].Name)
	assert.Equal(t, 4, found[0].NArgs)
	assert.Len(t, found[0].Args, 4)
}

func TestDuplicateNamesAreDeduplicated(t *testing.T) {
	_, found := functor.Extract("x+x+x")
	assert.Len(t, found, 1)
}

func TestIndexedObservableIsOneFunctor(t *testing.T) {
	wrapped, found := functor.Extract("x[7]")
	assert.Equal(t, "{x[7]}", wrapped)
	assert.Len(t, found, 1)
	assert.True(t, found[0].Indexed)
	assert.Equal(t, 7, found[0].Index)
}
