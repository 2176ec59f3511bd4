// Package bytecode implements the Bytecode object: an append-only
// builder that freezes into an immutable, randomly-addressable
// instruction vector the dispatch loop executes against. Grounded on
// original_source/pyhp/bytecode.py's ByteCode class.
package bytecode

import (
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// Opcode is the contract every instruction kind implements. Eval
// performs the opcode's effect against the current frame and returns
// (nil, false) to continue execution, or (v, true) to signal a function
// return with value v (which may itself be a Null value).
type Opcode interface {
	Eval(f *frame.Frame) (*values.Value, bool)
}

// Jump is implemented by control-transfer opcodes. DoJump computes the
// next program counter given the frame state and the opcode's own
// current pc; the dispatch loop only ever reassigns pc through this
// method for opcodes that implement it.
type Jump interface {
	Opcode
	DoJump(f *frame.Frame, pc int) int
}

// Bytecode is a compiled program: a flat instruction vector plus the
// symbol-table metadata the frame needs to be shaped correctly
// (local-slot count, declared variable names, formal parameters).
type Bytecode struct {
	opcodes    []Opcode
	compiled   bool
	SymbolSize int
	Variables  []string
	Parameters []string
	// ParamSlots holds, for each entry in Parameters, the local slot
	// in Variables it's bound to — precomputed by the compiler so CALL
	// never has to search Variables by name at run time.
	ParamSlots []int
}

// New creates an empty builder for a scope with the given local-slot
// count, declared variable names, formal parameter names (a subset of
// Variables, in call order), and each parameter's local slot.
func New(symbolSize int, variables []string, parameters []string, paramSlots []int) *Bytecode {
	return &Bytecode{
		SymbolSize: symbolSize,
		Variables:  variables,
		Parameters: parameters,
		ParamSlots: paramSlots,
	}
}

// Emit appends an opcode to the builder. Panics if called after Compile
// — the frozen form is immutable by design, matching pyhp's
// opcodes-then-compiled_opcodes split.
func (bc *Bytecode) Emit(op Opcode) {
	if bc.compiled {
		panic("bytecode: Emit called on a compiled Bytecode")
	}
	bc.opcodes = append(bc.opcodes, op)
}

// NextIndex returns the index the next Emit call will assign, useful
// for backpatching a jump target before the jump's destination has been
// emitted yet.
func (bc *Bytecode) NextIndex() int {
	return len(bc.opcodes)
}

// Patch replaces the opcode at index, for backpatching a jump once its
// target is known (e.g. an `if`'s else-branch start, a `while`'s
// loop-exit point). Only valid before Compile.
func (bc *Bytecode) Patch(index int, op Opcode) {
	if bc.compiled {
		panic("bytecode: Patch called on a compiled Bytecode")
	}
	bc.opcodes[index] = op
}

// Compile freezes the instruction vector. After this call the Bytecode
// is safe to execute (and to execute concurrently from multiple
// frames), since Eval/DoJump act only on the frame they are given and
// never modify the Bytecode.
func (bc *Bytecode) Compile() *Bytecode {
	bc.compiled = true
	return bc
}

// OpcodeCount returns the number of instructions in the frozen program.
func (bc *Bytecode) OpcodeCount() int {
	return len(bc.opcodes)
}

// GetOpcode returns the instruction at pc. Out-of-range access is a bug
// in the caller (the dispatch loop checks bounds before calling this).
func (bc *Bytecode) GetOpcode(pc int) Opcode {
	return bc.opcodes[pc]
}
