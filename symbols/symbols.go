/*
Package symbols implements the ordered symbol tables used by the formula
core: variables, parameters, and the read-only table of predefined
constants.

A variable or parameter table is an insertion-ordered map from name to a
slot index into the corresponding numeric vector the evaluator reads from.
Re-adding an existing name updates its value in place and never moves its
slot; adding a new name appends a slot at the current table size.
*/
package symbols

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.symbols")
}

// Entry is a single variable or parameter slot.
type Entry struct {
	Name  string
	Value float64
	Slot  int
	Found bool
}

// Table is an insertion-ordered name -> Entry map, backed by a
// linkedhashmap so that Names() and slot assignment both respect
// first-declaration order.
type Table struct {
	kind    string // "variable" or "parameter", used in log messages only
	entries *linkedhashmap.Map
}

// NewTable creates an empty table. kind is purely cosmetic and shows up in
// log messages ("variable", "parameter").
func NewTable(kind string) *Table {
	return &Table{
		kind:    kind,
		entries: linkedhashmap.New(),
	}
}

// Add inserts name with value if absent, appending a new slot at the
// table's current size. If name already exists, its value is updated in
// place and the existing slot is preserved. Returns the entry's slot.
func (t *Table) Add(name string, value float64) int {
	if v, ok := t.entries.Get(name); ok {
		e := v.(*Entry)
		e.Value = value
		return e.Slot
	}
	slot := t.entries.Size()
	e := &Entry{Name: name, Value: value, Slot: slot}
	t.entries.Put(name, e)
	tracer().P(t.kind, name).Debugf("added at slot %d", slot)
	return slot
}

// Set updates the value of an existing entry. Returns ErrUnknown-typed
// caller errors are the caller's business; Set itself just reports ok.
func (t *Table) Set(name string, value float64) bool {
	v, ok := t.entries.Get(name)
	if !ok {
		tracer().P(t.kind, name).Errorf("setting unknown %s", t.kind)
		return false
	}
	v.(*Entry).Value = value
	return true
}

// SetBySlot updates the value of the entry currently occupying slot.
func (t *Table) SetBySlot(slot int, value float64) bool {
	found := false
	t.entries.Each(func(_ interface{}, v interface{}) {
		e := v.(*Entry)
		if e.Slot == slot {
			e.Value = value
			found = true
		}
	})
	if !found {
		tracer().Errorf("setting unknown %s slot %d", t.kind, slot)
	}
	return found
}

// Get returns an entry's value and whether it exists.
func (t *Table) Get(name string) (float64, bool) {
	v, ok := t.entries.Get(name)
	if !ok {
		return 0, false
	}
	return v.(*Entry).Value, true
}

// GetBySlot returns the value stored at slot.
func (t *Table) GetBySlot(slot int) (float64, bool) {
	var value float64
	found := false
	t.entries.Each(func(_ interface{}, v interface{}) {
		e := v.(*Entry)
		if e.Slot == slot {
			value = e.Value
			found = true
		}
	})
	return value, found
}

// Entry returns the raw entry for name, or nil.
func (t *Table) Entry(name string) *Entry {
	v, ok := t.entries.Get(name)
	if !ok {
		return nil
	}
	return v.(*Entry)
}

// EntryBySlot returns the raw entry currently at slot, or nil.
func (t *Table) EntryBySlot(slot int) *Entry {
	var found *Entry
	t.entries.Each(func(_ interface{}, v interface{}) {
		e := v.(*Entry)
		if e.Slot == slot {
			found = e
		}
	})
	return found
}

// MarkFound flags name as having been matched during resolution at least
// once. Purge() uses this to drop unused default variables.
func (t *Table) MarkFound(name string) {
	if v, ok := t.entries.Get(name); ok {
		v.(*Entry).Found = true
	}
}

// MarkFoundBySlot is MarkFound addressed by slot instead of name.
func (t *Table) MarkFoundBySlot(slot int) {
	if e := t.EntryBySlot(slot); e != nil {
		e.Found = true
	}
}

// Has is a predicate: does name exist in the table?
func (t *Table) Has(name string) bool {
	_, ok := t.entries.Get(name)
	return ok
}

// Count returns the number of entries.
func (t *Table) Count() int {
	return t.entries.Size()
}

// Names returns all entry names in slot (insertion) order.
func (t *Table) Names() []string {
	names := make([]string, 0, t.entries.Size())
	t.entries.Each(func(k interface{}, _ interface{}) {
		names = append(names, k.(string))
	})
	return names
}

// Values returns a freshly built numeric vector, one value per slot, in
// slot order. This is what gets handed to the evaluator.
func (t *Table) Values() []float64 {
	vals := make([]float64, t.entries.Size())
	t.entries.Each(func(_ interface{}, v interface{}) {
		e := v.(*Entry)
		if e.Slot < len(vals) {
			vals[e.Slot] = e.Value
		}
	})
	return vals
}

// Purge removes every entry for which keep returns false, then
// renumbers the remaining entries' slots to be contiguous starting at 0,
// in their relative order. Used to drop unused default variables
// (x, y, z, t) that were seeded but never matched during resolution.
func (t *Table) Purge(keep func(*Entry) bool) {
	type kept struct {
		name string
		e    *Entry
	}
	var keptEntries []kept
	t.entries.Each(func(k interface{}, v interface{}) {
		e := v.(*Entry)
		if keep(e) {
			keptEntries = append(keptEntries, kept{k.(string), e})
		}
	})
	fresh := linkedhashmap.New()
	for i, ke := range keptEntries {
		ke.e.Slot = i
		fresh.Put(ke.name, ke.e)
	}
	t.entries = fresh
}

// Rename changes the name under which the entry at slot is stored,
// leaving its value and slot untouched. Used by SetParameterName, the
// one case where the stored raw text must also be rewritten by the
// caller.
func (t *Table) Rename(slot int, newName string) error {
	e := t.EntryBySlot(slot)
	if e == nil {
		return fmt.Errorf("tformula/symbols: no %s at slot %d", t.kind, slot)
	}
	fresh := linkedhashmap.New()
	t.entries.Each(func(k interface{}, v interface{}) {
		if v.(*Entry) == e {
			fresh.Put(newName, e)
		} else {
			fresh.Put(k, v)
		}
	})
	e.Name = newName
	t.entries = fresh
	return nil
}

// DefaultName returns the decimal-index default name a parameter gets
// when it is introduced anonymously by a bracketed literal like [3].
func DefaultName(slot int) string {
	return fmt.Sprintf("%d", slot)
}

// IndexedName returns the default name a variable gets when it is
// introduced by an indexed observable like x[7]: x[0]..x[slot], matching
// TFormula.cxx's FillDefaults naming for those back-filled slots.
func IndexedName(slot int) string {
	return fmt.Sprintf("x[%d]", slot)
}

// DefaultObservables lists the reserved bare variable names, in the fixed
// slot order the resolver back-fills them in: x is always slot 0, y slot
// 1, and so on.
var DefaultObservables = []string{"x", "y", "z", "t"}

// EnsureSlot inserts name at an exact slot, creating it with value 0 if
// absent. It is used to back-fill gaps (e.g. "y" alone implies "x" at
// slot 0) and never disturbs an existing entry's value.
func (t *Table) EnsureSlot(name string, slot int) *Entry {
	if v, ok := t.entries.Get(name); ok {
		return v.(*Entry)
	}
	e := &Entry{Name: name, Value: 0, Slot: slot}
	t.entries.Put(name, e)
	tracer().P(t.kind, name).Debugf("back-filled at slot %d", slot)
	return e
}

// MaxSlot returns the highest slot currently in use, or -1 if empty.
func (t *Table) MaxSlot() int {
	max := -1
	t.entries.Each(func(_ interface{}, v interface{}) {
		if e := v.(*Entry); e.Slot > max {
			max = e.Slot
		}
	})
	return max
}
