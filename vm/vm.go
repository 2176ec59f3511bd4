// Package vm implements the executor: the fetch-decode-eval dispatch
// loop that runs a compiled Bytecode program against a Frame. Grounded
// on original_source/pyhp/bytecode.py's ByteCode.execute, with the loop
// advancing pc the same way teacher's vm.run does in
// _examples/wudi-hey/vm/vm.go.
package vm

import (
	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/errors"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/jit"
	"github.com/sprigvm/sprig/values"
)

// Executor runs compiled programs against frames, reporting merge-point
// and back-edge events to an observer.
type Executor struct {
	Hooks jit.Hooks
}

// New creates an Executor. A nil hooks argument runs with jit.NoopHooks.
func New(hooks jit.Hooks) *Executor {
	if hooks == nil {
		hooks = jit.NoopHooks{}
	}
	return &Executor{Hooks: hooks}
}

// Execute runs bc against f from pc 0 until an opcode signals a return,
// or the program counter runs off the end of the instruction vector (in
// which case the result is Null, matching a function falling off its
// end without an explicit RETURN). An opcode that panics with an
// *errors.Error (a missing array key, a bad call, '%' by zero, ...) is
// recovered here and returned as err; any other panic is re-raised.
func (e *Executor) Execute(bc *bytecode.Bytecode, f *frame.Frame) (result *values.Value, err error) {
	count := bc.OpcodeCount()
	if count == 0 {
		return values.NewNull(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*errors.Error); ok {
				err = rerr
				return
			}
			panic(r)
		}
	}()

	pc := 0
	for {
		e.Hooks.OnMergePoint(pc)

		if pc < 0 || pc >= count {
			return values.NewNull(), nil
		}

		op := bc.GetOpcode(pc)
		v, isReturn := op.Eval(f)
		if isReturn {
			if v == nil {
				v = values.NewNull()
			}
			return v, nil
		}

		if j, ok := op.(bytecode.Jump); ok {
			newPC := j.DoJump(f, pc)
			if newPC < pc {
				e.Hooks.OnBackEdge(newPC)
			}
			pc = newPC
			continue
		}
		pc++
	}
}
