package opcodes

import (
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// LoadVar pushes the value of the local at Slot.
type LoadVar struct{ Slot int }

func (op LoadVar) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Push(f.Locals[op.Slot])
	return nil, false
}

// StoreVar pops the top of the operand stack into the local at Slot,
// then pushes it back — assignment is an expression, matching the
// teacher's OP_ASSIGN, which leaves the assigned value on the stack.
type StoreVar struct{ Slot int }

func (op StoreVar) Eval(f *frame.Frame) (*values.Value, bool) {
	v := f.Pop()
	f.Locals[op.Slot] = v
	f.Push(v)
	return nil, false
}

// DeclareVar resets the local at Slot to Null, giving the variable a
// defined initial value before first use.
type DeclareVar struct{ Slot int }

func (op DeclareVar) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Locals[op.Slot] = values.NewNull()
	return nil, false
}
