package opcodes

import (
	"github.com/sprigvm/sprig/errors"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// Add pops b then a and pushes a.Add(b) — string concatenation in place
// if either side is a string, otherwise overflow-promoting arithmetic.
type Add struct{}

func (Add) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(a.Add(b))
	return nil, false
}

// Sub pops b then a and pushes a.Sub(b).
type Sub struct{}

func (Sub) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(a.Sub(b))
	return nil, false
}

// Mul pops b then a and pushes a.Mul(b).
type Mul struct{}

func (Mul) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(a.Mul(b))
	return nil, false
}

// Div pops b then a and pushes a.Div(b): always float division,
// collapsed to Int when the result is exactly integral.
type Div struct{}

func (Div) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(a.Div(b))
	return nil, false
}

// Mod pops b then a and pushes a.Mod(b): fmod sign rules, a left-zero
// dividend short-circuits to itself, a zero right operand raises.
type Mod struct{}

func (Mod) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	if a.ToInt() != 0 && b.ToInt() == 0 {
		panic(errors.New(errors.DivisionByZero, "modulo by zero"))
	}
	f.Push(a.Mod(b))
	return nil, false
}

// Inc pops a value and pushes its Increment().
type Inc struct{}

func (Inc) Eval(f *frame.Frame) (*values.Value, bool) {
	v := f.Pop()
	f.Push(v.Increment())
	return nil, false
}

// Dec pops a value and pushes its Decrement().
type Dec struct{}

func (Dec) Eval(f *frame.Frame) (*values.Value, bool) {
	v := f.Pop()
	f.Push(v.Decrement())
	return nil, false
}
