// Package opcodes implements the instruction set: one Go type per
// opcode kind, each satisfying bytecode.Opcode (and bytecode.Jump for
// control-transfer kinds). Each opcode is a small, self-contained value
// whose Eval method pops its operands off the frame's stack and pushes
// its result.
package opcodes

import (
	"strings"

	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// LoadNull pushes the Null value.
type LoadNull struct{}

func (LoadNull) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Push(values.NewNull())
	return nil, false
}

// LoadBool pushes a literal Bool.
type LoadBool struct{ Value bool }

func (op LoadBool) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Push(values.NewBool(op.Value))
	return nil, false
}

// LoadInt pushes a literal Int.
type LoadInt struct{ Value int64 }

func (op LoadInt) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Push(values.NewInt(op.Value))
	return nil, false
}

// LoadFloat pushes a literal Float.
type LoadFloat struct{ Value float64 }

func (op LoadFloat) Eval(f *frame.Frame) (*values.Value, bool) {
	f.Push(values.NewFloat(op.Value))
	return nil, false
}

// StringPart is one piece of a LoadString's pre-parsed interpolation:
// either a literal text segment, or a placeholder resolved at compile
// time to the local slot of its base variable (and, for `{name[index]}`
// forms, the slot or constant of its index expression).
type StringPart struct {
	Literal       string
	IsPlaceholder bool
	Slot          int
	HasIndex      bool
	IndexSlot     int
	IndexConst    *values.Value
}

// LoadString pushes the concatenation of its parts: literal text
// appended verbatim, placeholders resolved against the current frame's
// locals (and, when indexed, against the array element they name).
// Pre-parsing the `{name}`/`{name[index]}` placeholders is the
// compiler's job (see ast/compiler), mirroring pyhp's string_unquote.
type LoadString struct{ Parts []StringPart }

func (op LoadString) Eval(f *frame.Frame) (*values.Value, bool) {
	var b strings.Builder
	for _, part := range op.Parts {
		if !part.IsPlaceholder {
			b.WriteString(part.Literal)
			continue
		}
		v := f.Locals[part.Slot]
		if part.HasIndex {
			var idx *values.Value
			if part.IndexConst != nil {
				idx = part.IndexConst
			} else {
				idx = f.Locals[part.IndexSlot]
			}
			if v.IsArray() {
				if elem, ok := v.Data.(*values.Array).Get(idx); ok {
					v = elem
				} else {
					v = values.NewNull()
				}
			}
		}
		b.WriteString(v.ToString())
	}
	f.Push(values.NewString(b.String()))
	return nil, false
}
