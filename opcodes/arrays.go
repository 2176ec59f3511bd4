package opcodes

import (
	"github.com/sprigvm/sprig/errors"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// LoadArrayElem pops an index then an array and pushes the element at
// that index. Reading an absent key is a runtime error, raised as a
// panic caught at the dispatch loop's recover boundary.
type LoadArrayElem struct{}

func (LoadArrayElem) Eval(f *frame.Frame) (*values.Value, bool) {
	key := f.Pop()
	arr := f.Pop()
	if !arr.IsArray() {
		panic(errors.New(errors.ArityOrTypeMismatch, "cannot index a %s value", arr.Type))
	}
	v, ok := arr.Data.(*values.Array).Get(key)
	if !ok {
		panic(errors.New(errors.MissingArrayKey, "undefined array key %s", key.ToString()))
	}
	f.Push(v)
	return nil, false
}

// StoreArrayElem pops a value, an index, then an array, stores the
// value at that index, and pushes the value back (assignment is an
// expression, as with StoreVar).
type StoreArrayElem struct{}

func (StoreArrayElem) Eval(f *frame.Frame) (*values.Value, bool) {
	val := f.Pop()
	key := f.Pop()
	arr := f.Pop()
	if !arr.IsArray() {
		panic(errors.New(errors.ArityOrTypeMismatch, "cannot index a %s value", arr.Type))
	}
	arr.Data.(*values.Array).Put(key, val)
	f.Push(val)
	return nil, false
}

// BuildArray pops 2*Count values off the stack — Count (key, value)
// pairs, pushed key-then-value per pair in source order — and pushes a
// freshly built Array preserving that order.
type BuildArray struct{ Count int }

func (op BuildArray) Eval(f *frame.Frame) (*values.Value, bool) {
	type pair struct{ key, val *values.Value }
	pairs := make([]pair, op.Count)
	for i := op.Count - 1; i >= 0; i-- {
		val := f.Pop()
		key := f.Pop()
		pairs[i] = pair{key, val}
	}
	arr := values.NewArrayValue()
	for _, p := range pairs {
		arr.Data.(*values.Array).Put(p.key, p.val)
	}
	f.Push(arr)
	return nil, false
}

// BuildList pops Count values off the stack and pushes a List
// preserving source order, used by multi-assignment destructuring.
type BuildList struct{ Count int }

func (op BuildList) Eval(f *frame.Frame) (*values.Value, bool) {
	items := make([]*values.Value, op.Count)
	for i := op.Count - 1; i >= 0; i-- {
		items[i] = f.Pop()
	}
	f.Push(values.NewList(items))
	return nil, false
}
