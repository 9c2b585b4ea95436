package formula

import (
	"fmt"
	"strings"

	"github.com/cernflow/tformula/internal/errs"
)

// GetParameter returns a parameter's value by name, or -1 and
// ErrUnknownParameter if it doesn't exist (logged before returning).
func (f *Formula) GetParameter(name string) (float64, error) {
	v, ok := f.parameters.Get(name)
	if !ok {
		tracer().P("name", f.name).Errorf("unknown parameter %q", name)
		return -1, errs.ErrUnknownParameter
	}
	return v, nil
}

// GetParameterByIndex is GetParameter addressed by slot.
func (f *Formula) GetParameterByIndex(index int) (float64, error) {
	v, ok := f.parameters.GetBySlot(index)
	if !ok {
		tracer().P("name", f.name).Errorf("unknown parameter index %d", index)
		return -1, errs.ErrUnknownParameter
	}
	return v, nil
}

// SetParameter updates a parameter's value by name; a no-op (logged) if
// the name doesn't exist.
func (f *Formula) SetParameter(name string, value float64) error {
	if !f.parameters.Set(name, value) {
		return errs.ErrUnknownParameter
	}
	return nil
}

// SetParameterByIndex is SetParameter addressed by slot.
func (f *Formula) SetParameterByIndex(index int, value float64) error {
	if !f.parameters.SetBySlot(index, value) {
		return errs.ErrUnknownParameter
	}
	return nil
}

// SetParameterName renames the parameter at index. The stored canonical
// text already addresses parameters positionally ("p[slot]") and is left
// alone, but the raw text a caller constructed the formula from still
// spells the parameter as "[index]" and must be rewritten too, the way
// TFormula::SetParName rewrites fFormula in place: otherwise Original
// and Clone would go on using the old name.
func (f *Formula) SetParameterName(index int, newName string) error {
	if err := f.parameters.Rename(index, newName); err != nil {
		return err
	}
	f.original = strings.ReplaceAll(f.original,
		fmt.Sprintf("[%d]", index), fmt.Sprintf("[%s]", newName))
	return nil
}

// SetParameters bulk-assigns parameter values in slot order; values
// beyond nPar are ignored.
func (f *Formula) SetParameters(values []float64) {
	for i, v := range values {
		if i >= f.parameters.Count() {
			break
		}
		f.parameters.SetBySlot(i, v)
	}
}

// SetParametersUpTo11 sets as many of the first 11 parameter slots as
// the caller supplies, mirroring the fixed-arity convenience setter the
// source exposes for callers that don't want to build a slice. Values
// past the eleventh are dropped (logged).
func (f *Formula) SetParametersUpTo11(ps ...float64) {
	if len(ps) > 11 {
		tracer().P("name", f.name).Errorf("%d positional parameters given, only the first 11 are set", len(ps))
		ps = ps[:11]
	}
	f.SetParameters(ps)
}

// ParameterNames returns every parameter name, in slot order.
func (f *Formula) ParameterNames() []string {
	return f.parameters.Names()
}

// GetVariable returns a variable's current value by name.
func (f *Formula) GetVariable(name string) (float64, error) {
	e := f.variables.Entry(name)
	if e == nil {
		tracer().P("name", f.name).Errorf("unknown variable %q", name)
		return -1, errs.ErrUnknownVariable
	}
	if e.Slot < len(f.varValues) {
		return f.varValues[e.Slot], nil
	}
	return 0, nil
}

// SetVariable sets a variable's current value by name; a no-op
// (logged) if the name is unknown.
func (f *Formula) SetVariable(name string, value float64) error {
	e := f.variables.Entry(name)
	if e == nil {
		tracer().P("name", f.name).Errorf("unknown variable %q", name)
		return errs.ErrUnknownVariable
	}
	if e.Slot >= len(f.varValues) {
		grown := make([]float64, e.Slot+1)
		copy(grown, f.varValues)
		f.varValues = grown
	}
	f.varValues[e.Slot] = value
	return nil
}

// NameValue is one (name, value) pair for SetVariables' bulk form.
type NameValue struct {
	Name  string
	Value float64
}

// SetVariables bulk-assigns variable values by name.
func (f *Formula) SetVariables(pairs []NameValue) {
	for _, p := range pairs {
		_ = f.SetVariable(p.Name, p.Value)
	}
}

// VariableNames returns every variable name, in slot order.
func (f *Formula) VariableNames() []string {
	return f.variables.Names()
}
