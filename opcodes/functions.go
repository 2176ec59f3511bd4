package opcodes

import (
	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/errors"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/registry"
	"github.com/sprigvm/sprig/values"
	"github.com/sprigvm/sprig/vm"
)

// defaultExecutor runs nested calls whose CALL site didn't carry its
// own Exec (e.g. hand-built opcode lists in tests); a non-tracing
// dispatch loop with no hot-spot observation.
var defaultExecutor = vm.New(nil)

// Return pops the top of the operand stack and signals a function
// return with that value, matching a bare `return;` compiling to a
// LOAD_NULL immediately before RETURN.
type Return struct{}

func (Return) Eval(f *frame.Frame) (*values.Value, bool) {
	return f.Pop(), true
}

// BuildFunction pushes a Function value whose body is Body and whose
// Captured map is an eager snapshot of the named outer variables at
// CaptureSlots in the current frame — closures copy, they do not alias.
type BuildFunction struct {
	Name         string
	Body         *bytecode.Bytecode
	CaptureNames []string
	CaptureSlots []int
}

func (op BuildFunction) Eval(f *frame.Frame) (*values.Value, bool) {
	var captured map[string]*values.Value
	if len(op.CaptureNames) > 0 {
		captured = make(map[string]*values.Value, len(op.CaptureNames))
		for i, name := range op.CaptureNames {
			captured[name] = f.Locals[op.CaptureSlots[i]]
		}
	}
	f.Push(values.NewFunction(&values.Function{
		Name:     op.Name,
		Body:     op.Body,
		Captured: captured,
	}))
	return nil, false
}

// LoadFunction pushes a Function value resolved by name from Table,
// the by-name counterpart to BuildFunction's by-value closures: a
// top-level `function foo(...) {...}` declaration registers its
// compiled body in Table once at compile time (see ast.FuncDecl), and
// every call site that names it by name, anywhere in the program, goes
// through this opcode rather than a local-variable lookup.
type LoadFunction struct {
	Name  string
	Table *registry.Table
}

func (op LoadFunction) Eval(f *frame.Frame) (*values.Value, bool) {
	fn, ok := op.Table.Lookup(op.Name)
	if !ok {
		panic(errors.New(errors.Internal, "call to undefined function %q", op.Name))
	}
	f.Push(values.NewFunction(&values.Function{
		Name: fn.Name,
		Body: fn.Body,
	}))
	return nil, false
}

// Call pops ArgCount arguments (in source order) then a callee Function
// value, binds the arguments into a fresh frame sized for the callee's
// body, seeds any captured variables, runs the body to completion, and
// pushes its result. Exec lets the compiler thread a shared Executor
// (and so a shared hot-spot observer) through nested calls; a nil Exec
// falls back to a private, unobserved one.
type Call struct {
	ArgCount int
	Exec     *vm.Executor
}

func (op Call) Eval(f *frame.Frame) (*values.Value, bool) {
	args := make([]*values.Value, op.ArgCount)
	for i := op.ArgCount - 1; i >= 0; i-- {
		args[i] = f.Pop()
	}
	calleeVal := f.Pop()
	if !calleeVal.IsFunction() {
		panic(errors.New(errors.ArityOrTypeMismatch, "cannot call a %s value", calleeVal.Type))
	}
	fn := calleeVal.Data.(*values.Function)
	body, ok := fn.Body.(*bytecode.Bytecode)
	if !ok {
		panic(errors.New(errors.Internal, "function %q has no compiled body", fn.Name))
	}
	if len(args) != len(body.Parameters) {
		panic(errors.New(errors.ArityOrTypeMismatch,
			"function %q expects %d argument(s), got %d", fn.Name, len(body.Parameters), len(args)))
	}

	callee := frame.New(body.SymbolSize)
	for name, val := range fn.Captured {
		for idx, varName := range body.Variables {
			if varName == name {
				callee.Locals[idx] = val
				break
			}
		}
	}
	for i, slot := range body.ParamSlots {
		callee.Locals[slot] = args[i]
	}

	exec := op.Exec
	if exec == nil {
		exec = defaultExecutor
	}
	result, err := exec.Execute(body, callee)
	if err != nil {
		panic(err)
	}
	f.Push(result)
	return nil, false
}
