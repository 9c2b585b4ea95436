package functable_test

import (
	"math"
	"testing"

	"github.com/cernflow/tformula/functable"
	"github.com/stretchr/testify/assert"
)

func TestAliasesQualify(t *testing.T) {
	a := functable.NewAliases()
	q, ok := a.Qualify("sin")
	assert.True(t, ok)
	assert.Equal(t, "TMath::Sin", q)

	_, ok = a.Qualify("nope")
	assert.False(t, ok)
}

func TestDispatcherTranscendentals(t *testing.T) {
	d := functable.NewDispatcher()
	v, err := d.Call("TMath::Sin", []float64{1.0})
	assert.NoError(t, err)
	assert.InDelta(t, math.Sin(1.0), v, 1e-12)

	v, err = d.Call("TMath::Power", []float64{2.0, 10.0})
	assert.NoError(t, err)
	assert.Equal(t, 1024.0, v)
}

func TestDispatcherUnknownIsError(t *testing.T) {
	d := functable.NewDispatcher()
	_, err := d.Call("TMath::DoesNotExist", []float64{1.0})
	assert.Error(t, err)
}

func TestDispatcherArityMismatch(t *testing.T) {
	d := functable.NewDispatcher()
	_, err := d.Call("TMath::Sin", []float64{1.0, 2.0})
	assert.Error(t, err)
}

func TestLandauPeaksNearMostProbableValue(t *testing.T) {
	d := functable.NewDispatcher()
	atPeak, _ := d.Call("TMath::Landau", []float64{0, 0, 1, 0})
	farFromPeak, _ := d.Call("TMath::Landau", []float64{20, 0, 1, 0})
	assert.Greater(t, atPeak, farFromPeak)
}
