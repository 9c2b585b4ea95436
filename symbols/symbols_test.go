package symbols_test

import (
	"testing"

	"github.com/cernflow/tformula/symbols"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestAddAssignsSequentialSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.symbols")
	defer teardown()

	tab := symbols.NewTable("variable")
	if slot := tab.Add("x", 1.5); slot != 0 {
		t.Errorf("expected first slot to be 0, got %d", slot)
	}
	if slot := tab.Add("y", 2.5); slot != 1 {
		t.Errorf("expected second slot to be 1, got %d", slot)
	}
	// re-adding preserves the slot and updates the value
	if slot := tab.Add("x", 9.0); slot != 0 {
		t.Errorf("expected re-add to keep slot 0, got %d", slot)
	}
	v, ok := tab.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestSetUnknownFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.symbols")
	defer teardown()

	tab := symbols.NewTable("parameter")
	if tab.Set("nope", 1.0) {
		t.Errorf("expected Set on unknown name to fail")
	}
}

func TestPurgeKeepsOnlyUsedSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tformula.symbols")
	defer teardown()

	tab := symbols.NewTable("variable")
	tab.EnsureSlot("x", 0)
	tab.EnsureSlot("y", 1)
	tab.EnsureSlot("z", 2)
	tab.MarkFound("y") // only y was actually referenced; nDim ends up 2

	tab.Purge(func(e *symbols.Entry) bool { return e.Slot < 2 })

	names := tab.Names()
	assert.ElementsMatch(t, []string{"x", "y"}, names)
	assert.Equal(t, 1, tab.MaxSlot())
}

func TestConstantsAreSeeded(t *testing.T) {
	c := symbols.NewConstants()
	v, ok := c.Get("pi")
	assert.True(t, ok)
	assert.InDelta(t, 3.14159265, v, 1e-6)

	v, ok = c.Get("true")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = c.Get("nonexistent")
	assert.False(t, ok)
}
