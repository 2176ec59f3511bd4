// Package registry holds the minimal symbol-table types the executor
// needs to resolve a Function value's formal parameters and compiled
// body. There is deliberately no Class/Interface/Trait/Enum here: the
// object/class system is out of scope for this execution core.
package registry

import "github.com/sprigvm/sprig/bytecode"

// Parameter describes one formal parameter of a Function.
type Parameter struct {
	Name        string
	IsReference bool
	HasDefault  bool
	Default     interface{}
}

// Function is a compiled, callable unit: a name, its compiled body, and
// its formal parameter list. Anonymous functions use an empty Name.
type Function struct {
	Name        string
	Body        *bytecode.Bytecode
	Parameters  []Parameter
	IsVariadic  bool
	IsAnonymous bool
}

// Table is a simple name-keyed registry of compiled functions, used to
// resolve CALL targets that reference a function by name rather than by
// a Function value already on the stack.
type Table struct {
	functions map[string]*Function
}

func NewTable() *Table {
	return &Table{functions: make(map[string]*Function)}
}

func (t *Table) Define(fn *Function) {
	t.functions[fn.Name] = fn
}

func (t *Table) Lookup(name string) (*Function, bool) {
	fn, ok := t.functions[name]
	return fn, ok
}

func (t *Table) Merge(other *Table) {
	for name, fn := range other.functions {
		t.functions[name] = fn
	}
}
