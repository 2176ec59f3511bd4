package opcodes

import (
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// Gt pops b then a and pushes Bool(a > b).
type Gt struct{}

func (Gt) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.GreaterThan(b)))
	return nil, false
}

// Ge pops b then a and pushes Bool(a >= b).
type Ge struct{}

func (Ge) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.GreaterThanOrEqual(b)))
	return nil, false
}

// Lt pops b then a and pushes Bool(a < b), derived by swapping operands
// into GreaterThan.
type Lt struct{}

func (Lt) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.LessThan(b)))
	return nil, false
}

// Le pops b then a and pushes Bool(a <= b).
type Le struct{}

func (Le) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.LessThanOrEqual(b)))
	return nil, false
}

// Eq pops b then a and pushes Bool(a == b).
type Eq struct{}

func (Eq) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.Equals(b)))
	return nil, false
}

// Neq pops b then a and pushes Bool(a != b).
type Neq struct{}

func (Neq) Eval(f *frame.Frame) (*values.Value, bool) {
	b, a := f.Pop(), f.Pop()
	f.Push(values.NewBool(a.NotEquals(b)))
	return nil, false
}
