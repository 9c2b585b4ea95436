/*
Package eval implements the evaluator (C5): an interpreted back end
that parses an already-canonical arithmetic expression into an AST,
compiles it once into a flat instruction stream, and walks that stream
on every call over an operand stack, dispatching qualified calls
through a function table.
*/
package eval

import (
	"fmt"
	"math"

	"github.com/cernflow/tformula/functable"
	"github.com/cernflow/tformula/internal/errs"
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.eval")
}

// Program is a compiled canonical expression, ready to be evaluated
// repeatedly against different variable/parameter vectors.
type Program struct {
	code       []instr
	dispatcher *functable.Dispatcher
}

// Compile parses and compiles canonical text into a reusable Program.
// Unknown qualified calls are rejected here, at compile time, never at
// Eval time.
func Compile(canonical string, dispatcher *functable.Dispatcher) (*Program, error) {
	ast, err := parse(canonical)
	if err != nil {
		tracer().Errorf("parse failure on %q: %v", canonical, err)
		return nil, fmt.Errorf("%w: %v", errs.ErrCompileBackendFailure, err)
	}
	code, err := compile(ast)
	if err != nil {
		tracer().Errorf("compile failure on %q: %v", canonical, err)
		return nil, fmt.Errorf("%w: %v", errs.ErrCompileBackendFailure, err)
	}
	if err := verifyCalls(code, dispatcher); err != nil {
		tracer().Errorf("unknown call in %q: %v", canonical, err)
		return nil, fmt.Errorf("%w: %v", errs.ErrCompileBackendFailure, err)
	}
	return &Program{code: code, dispatcher: dispatcher}, nil
}

func verifyCalls(code []instr, dispatcher *functable.Dispatcher) error {
	for _, in := range code {
		if in.op == opCall && !dispatcher.Has(in.name, in.nargs) {
			return fmt.Errorf("unresolved qualified call %s/%d", in.name, in.nargs)
		}
	}
	return nil
}

// Eval runs the compiled program once against vars and pars, returning
// the scalar result. Eval is a pure function of its inputs: two calls
// with equal vars/pars return bit-identical doubles.
func (p *Program) Eval(vars, pars []float64) (float64, error) {
	stack := linkedliststack.New()

	push := func(v float64) { stack.Push(v) }
	pop := func() float64 {
		v, _ := stack.Pop()
		return v.(float64)
	}

	ip := 0
	for ip < len(p.code) {
		in := p.code[ip]
		switch in.op {
		case opConst:
			push(in.num)
		case opLoadVar:
			push(valueAt(vars, in.slot))
		case opLoadParam:
			push(valueAt(pars, in.slot))
		case opAdd:
			b, a := pop(), pop()
			push(a + b)
		case opSub:
			b, a := pop(), pop()
			push(a - b)
		case opMul:
			b, a := pop(), pop()
			push(a * b)
		case opDiv:
			b, a := pop(), pop()
			push(a / b)
		case opPow:
			b, a := pop(), pop()
			push(math.Pow(a, b))
		case opNeg:
			push(-pop())
		case opNot:
			push(boolToFloat(pop() == 0))
		case opLt:
			b, a := pop(), pop()
			push(boolToFloat(a < b))
		case opLe:
			b, a := pop(), pop()
			push(boolToFloat(a <= b))
		case opGt:
			b, a := pop(), pop()
			push(boolToFloat(a > b))
		case opGe:
			b, a := pop(), pop()
			push(boolToFloat(a >= b))
		case opEq:
			b, a := pop(), pop()
			push(boolToFloat(a == b))
		case opNe:
			b, a := pop(), pop()
			push(boolToFloat(a != b))
		case opJumpIfFalse:
			if pop() == 0 {
				ip = in.target
				continue
			}
		case opJumpIfTrue:
			if pop() != 0 {
				ip = in.target
				continue
			}
		case opJump:
			ip = in.target
			continue
		case opCall:
			args := make([]float64, in.nargs)
			for i := in.nargs - 1; i >= 0; i-- {
				args[i] = pop()
			}
			v, err := p.dispatcher.Call(in.name, args)
			if err != nil {
				tracer().Errorf("call to %s failed: %v", in.name, err)
				return 0, err
			}
			push(v)
		}
		ip++
	}

	if stack.Size() != 1 {
		return 0, fmt.Errorf("tformula/eval: stack imbalance, left %d values", stack.Size())
	}
	return pop(), nil
}

func valueAt(vec []float64, slot int) float64 {
	if slot < 0 || slot >= len(vec) {
		return 0
	}
	return vec[slot]
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
