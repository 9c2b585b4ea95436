package formula

import "github.com/cernflow/tformula/internal/errs"

// Eval evaluates the formula against explicit variable and parameter
// vectors, without disturbing the formula's stored variable values.
func (f *Formula) Eval(vars, pars []float64) (float64, error) {
	if !f.ready || f.program == nil {
		tracer().P("name", f.name).Errorf("eval on not-ready formula")
		return -1, errs.ErrUnresolvedFunctor
	}
	return f.program.Eval(vars, pars)
}

// EvalCurrent evaluates using the formula's own stored variable and
// parameter values, as set via SetVariable/SetParameter.
func (f *Formula) EvalCurrent() (float64, error) {
	return f.Eval(f.varValues, f.parameters.Values())
}

// Eval1 is the Eval(x) convenience entry point: slot 0 is set to x, the
// rest of the stored variable vector is left as-is, and the current
// parameter vector is used.
func (f *Formula) Eval1(x float64) (float64, error) {
	return f.evalN(x, 0, 0, 0, 1)
}

// Eval2 is the Eval(x,y) convenience entry point.
func (f *Formula) Eval2(x, y float64) (float64, error) {
	return f.evalN(x, y, 0, 0, 2)
}

// Eval3 is the Eval(x,y,z) convenience entry point.
func (f *Formula) Eval3(x, y, z float64) (float64, error) {
	return f.evalN(x, y, z, 0, 3)
}

// Eval4 is the Eval(x,y,z,t) convenience entry point.
func (f *Formula) Eval4(x, y, z, t float64) (float64, error) {
	return f.evalN(x, y, z, t, 4)
}

func (f *Formula) evalN(x, y, z, t float64, n int) (float64, error) {
	vars := make([]float64, len(f.varValues))
	copy(vars, f.varValues)
	for len(vars) < n {
		vars = append(vars, 0)
	}
	vals := [4]float64{x, y, z, t}
	for i := 0; i < n; i++ {
		vars[i] = vals[i]
	}
	return f.Eval(vars, f.parameters.Values())
}
