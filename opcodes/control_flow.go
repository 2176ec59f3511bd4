package opcodes

import (
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// Jump unconditionally transfers control to Target.
type Jump struct{ Target int }

func (Jump) Eval(f *frame.Frame) (*values.Value, bool) { return nil, false }

func (op Jump) DoJump(f *frame.Frame, pc int) int { return op.Target }

// JumpIfFalse pops a value; if it is falsy, control transfers to
// Target, otherwise execution falls through to the next instruction.
type JumpIfFalse struct{ Target int }

func (JumpIfFalse) Eval(f *frame.Frame) (*values.Value, bool) { return nil, false }

func (op JumpIfFalse) DoJump(f *frame.Frame, pc int) int {
	if !f.Pop().IsTrue() {
		return op.Target
	}
	return pc + 1
}

// JumpIfTrue pops a value; if it is truthy, control transfers to
// Target, otherwise execution falls through to the next instruction.
type JumpIfTrue struct{ Target int }

func (JumpIfTrue) Eval(f *frame.Frame) (*values.Value, bool) { return nil, false }

func (op JumpIfTrue) DoJump(f *frame.Frame, pc int) int {
	if f.Pop().IsTrue() {
		return op.Target
	}
	return pc + 1
}
