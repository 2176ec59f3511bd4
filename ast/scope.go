// Package ast defines the minimal Node/Scope contract the compiler
// glue needs to turn a tree of demo node kinds into a compiled
// bytecode.Bytecode — standing in for the out-of-scope full-grammar
// surface parser and AST-to-bytecode walk. The node-kind shape (one Go
// struct per kind, a Compile method) with a symbol table (name -> slot,
// parent-scope capture resolution).
package ast

import (
	"sort"

	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/registry"
	"github.com/sprigvm/sprig/vm"
)

// Scope resolves variable names to local slots, one per function
// (if/while bodies share their enclosing function's Scope — this demo
// compiler doesn't introduce block scoping). A name absent from this
// Scope but present in an ancestor is a closure capture: Resolve
// allocates a local slot for it here and records which slot in the
// parent scope holds its current value at the point the enclosing
// function literal is compiled.
type Scope struct {
	vars     map[string]int
	next     int
	parent   *Scope
	captures map[string]int // name -> slot in parent, only for captured names
}

// NewScope creates a Scope. parent is nil for the top-level program.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		vars:     make(map[string]int),
		parent:   parent,
		captures: make(map[string]int),
	}
}

// Declare assigns (or returns the existing) local slot for name.
func (s *Scope) Declare(name string) int {
	if slot, ok := s.vars[name]; ok {
		return slot
	}
	slot := s.next
	s.vars[name] = slot
	s.next++
	return slot
}

// Resolve finds name's local slot, declaring it as a capture from an
// ancestor scope if it isn't already local here.
func (s *Scope) Resolve(name string) (int, bool) {
	if slot, ok := s.vars[name]; ok {
		return slot, true
	}
	if s.parent == nil {
		return 0, false
	}
	outerSlot, ok := s.parent.Resolve(name)
	if !ok {
		return 0, false
	}
	slot := s.Declare(name)
	s.captures[name] = outerSlot
	return slot, true
}

// Size returns the number of local slots declared so far.
func (s *Scope) Size() int { return s.next }

// Names returns declared variable names indexed by slot.
func (s *Scope) Names() []string {
	names := make([]string, s.next)
	for name, slot := range s.vars {
		names[slot] = name
	}
	return names
}

// Captures returns the names captured from the parent scope, and their
// slot in that parent, in a stable order.
func (s *Scope) Captures() (names []string, parentSlots []int) {
	for name := range s.captures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parentSlots = append(parentSlots, s.captures[name])
	}
	return names, parentSlots
}

// Context threads the in-progress Bytecode builder, the active Scope,
// and a shared Executor (so nested CALLs share one hot-spot observer)
// through a Compile call tree.
type Context struct {
	BC       *bytecode.Bytecode
	Scope    *Scope
	Exec     *vm.Executor
	Registry *registry.Table
}

// Child creates a Context for a nested function literal: a fresh
// Bytecode builder and a Scope whose parent is the current one.
func (c *Context) Child(bc *bytecode.Bytecode) *Context {
	return &Context{BC: bc, Scope: NewScope(c.Scope), Exec: c.Exec, Registry: c.Registry}
}

// Node is anything the compiler can turn into instructions against a
// Context's Bytecode builder.
type Node interface {
	Compile(ctx *Context) error
}
