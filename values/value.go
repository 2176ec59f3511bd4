// Package values implements the dynamic value domain of the execution
// core: a tagged union of the language's runtime types plus the
// coercion, comparison, arithmetic and string-literal helpers opcodes
// rely on.
package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType identifies which variant of the tagged union a Value holds.
type ValueType byte

const (
	TypeNull ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeList
	TypeIterator
	TypeFunction
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeList:
		return "list"
	case TypeIterator:
		return "iterator"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a runtime value. Data holds the variant's payload; its
// concrete type is determined by Type.
type Value struct {
	Type ValueType
	Data interface{}
}

// strBuffer is the mutable, reference-counted-by-aliasing backing store
// for Str values. Holding the same *strBuffer in two Values means
// Append through either is observable through both, per spec.
type strBuffer struct {
	buf []byte
}

// Function is the payload of a TypeFunction value: a name, a reference
// to its compiled body (an opaque interface to avoid an import cycle
// with the bytecode package — the opcodes package's CALL asserts it
// back to *bytecode.Bytecode), and
// an optional captured-variable map that makes the value a closure.
type Function struct {
	Name     string
	Body     interface{}
	Captured map[string]*Value
}

// Array is an ordered mapping Value -> Value. Insertion order is
// preserved and observable; key equality is value-equality, implemented
// by canonicalizing keys the same way canonicalArrayKey does
// (integers and numeric strings collapse to the same slot).
type Array struct {
	keys      []*Value
	values    []*Value
	index     map[interface{}]int
	nextIndex int64
}

// NewArrayValue constructs an empty Array value.
func NewArrayValue() *Value {
	return &Value{Type: TypeArray, Data: &Array{index: make(map[interface{}]int)}}
}

// List is a fixed sequence of values, produced by BUILD_LIST for
// multi-assignment destructuring.
type List struct {
	Items []*Value
}

// Iterator is a snapshot of an array's (key, value) pairs at the moment
// of creation; mutating the source array afterwards does not affect it.
// The pairs are stored reversed and the cursor walks backward, so that
// repeated Next() calls yield the pairs in their original forward order
// — the same mechanism pyhp's W_Iterator uses (reverse the list, then
// decrement a cursor), kept here as part of the observable value
// domain rather than an implementation detail.
type Iterator struct {
	pairs []arrayPair
	index int
}

type arrayPair struct {
	Key   *Value
	Value *Value
}

// Constructors

func NewNull() *Value             { return &Value{Type: TypeNull} }
func NewBool(b bool) *Value       { return &Value{Type: TypeBool, Data: b} }
func NewInt(i int64) *Value       { return &Value{Type: TypeInt, Data: i} }
func NewFloat(f float64) *Value   { return &Value{Type: TypeFloat, Data: f} }
func NewString(s string) *Value {
	return &Value{Type: TypeString, Data: &strBuffer{buf: []byte(s)}}
}
func NewList(items []*Value) *Value {
	return &Value{Type: TypeList, Data: &List{Items: items}}
}
func NewFunction(fn *Function) *Value {
	return &Value{Type: TypeFunction, Data: fn}
}

// Type predicates

func (v *Value) IsNull() bool     { return v.Type == TypeNull }
func (v *Value) IsBool() bool     { return v.Type == TypeBool }
func (v *Value) IsInt() bool      { return v.Type == TypeInt }
func (v *Value) IsFloat() bool    { return v.Type == TypeFloat }
func (v *Value) IsNumber() bool   { return v.Type == TypeInt || v.Type == TypeFloat }
func (v *Value) IsString() bool   { return v.Type == TypeString }
func (v *Value) IsArray() bool    { return v.Type == TypeArray }
func (v *Value) IsList() bool     { return v.Type == TypeList }
func (v *Value) IsIterator() bool { return v.Type == TypeIterator }
func (v *Value) IsFunction() bool { return v.Type == TypeFunction }

// IsTrue implements the language's truthiness rule.
func (v *Value) IsTrue() bool {
	switch v.Type {
	case TypeNull:
		return false
	case TypeBool:
		return v.Data.(bool)
	case TypeInt:
		return v.Data.(int64) != 0
	case TypeFloat:
		return v.Data.(float64) != 0
	case TypeString:
		return len(v.Data.(*strBuffer).buf) != 0
	default:
		return true
	}
}

// Coercion to number

func (v *Value) ToInt() int64 {
	switch v.Type {
	case TypeNull:
		return 0
	case TypeBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case TypeInt:
		return v.Data.(int64)
	case TypeFloat:
		return int64(v.Data.(float64))
	case TypeString:
		return int64(parseLeadingFloat(v.str()))
	default:
		return 0
	}
}

func (v *Value) ToFloat() float64 {
	switch v.Type {
	case TypeNull:
		return 0
	case TypeBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case TypeInt:
		return float64(v.Data.(int64))
	case TypeFloat:
		return v.Data.(float64)
	case TypeString:
		return parseLeadingFloat(v.str())
	default:
		return 0
	}
}

// ToString renders the short string form used by PRINT and by string
// coercion in arithmetic/comparison.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeNull:
		return ""
	case TypeBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case TypeString:
		return v.str()
	case TypeArray:
		return v.Data.(*Array).String()
	case TypeList:
		items := v.Data.(*List).Items
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.ToString()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TypeFunction:
		return fmt.Sprintf("function(%s)", v.Data.(*Function).Name)
	case TypeIterator:
		return "iterator"
	default:
		return ""
	}
}

func (v *Value) str() string {
	return string(v.Data.(*strBuffer).buf)
}

// parseLeadingFloat parses the leading numeric prefix of s, following
// the language's "parse what you can, stop at the first invalid byte"
// string-to-number rule. Returns 0 if no digits are found.
func parseLeadingFloat(s string) float64 {
	i := 0
	n := len(s)
	for i < n && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	start := i
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	sawDigits := false
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigits = true
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigits = true
		}
	}
	if sawDigits && i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	_ = digitsStart
	if !sawDigits {
		return 0
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0
	}
	return f
}

// Append mutates a Str value's buffer in place. Callers holding another
// Value that shares the same backing buffer observe the mutation too.
func (v *Value) Append(s string) {
	if v.Type != TypeString {
		return
	}
	b := v.Data.(*strBuffer)
	b.buf = append(b.buf, s...)
}

// Add implements the language's overloaded '+': string concatenation
// (in place, returning the left operand) when either side is a string,
// otherwise Int addition with overflow promotion to Float, otherwise
// Float addition of the coerced operands. Grounded on
// original_source/pyhp/datatypes.py's plus().
func (v *Value) Add(other *Value) *Value {
	if v.IsString() || other.IsString() {
		v.Append(other.ToString())
		return v
	}
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		sum := a + b
		if (b > 0 && sum < a) || (b < 0 && sum > a) {
			return NewFloat(float64(a) + float64(b))
		}
		return NewInt(sum)
	}
	return NewFloat(v.ToFloat() + other.ToFloat())
}

// Sub implements '-' with the same Int/Float overflow-promotion rule as Add.
func (v *Value) Sub(other *Value) *Value {
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return NewFloat(float64(a) - float64(b))
		}
		return NewInt(diff)
	}
	return NewFloat(v.ToFloat() - other.ToFloat())
}

// Mul implements '*' with the same Int/Float overflow-promotion rule.
func (v *Value) Mul(other *Value) *Value {
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		if a == 0 || b == 0 {
			return NewInt(0)
		}
		prod := a * b
		if prod/a != b || (a == -1 && b == math.MinInt64) {
			return NewFloat(float64(a) * float64(b))
		}
		return NewInt(prod)
	}
	return NewFloat(v.ToFloat() * other.ToFloat())
}

// Div implements '/': always float division, collapsed back to Int when
// the mathematical result is exactly integral.
func (v *Value) Div(other *Value) *Value {
	result := v.ToFloat() / other.ToFloat()
	if !math.IsInf(result, 0) && !math.IsNaN(result) && result == math.Trunc(result) {
		return NewInt(int64(result))
	}
	return NewFloat(result)
}

// Mod implements '%' using fmod sign rules. If the left operand is
// zero, it is returned unchanged. A zero right operand is the caller's
// responsibility to reject (see errors.ErrDivisionByZero); Mod itself
// does not raise so it stays a pure value operation.
func (v *Value) Mod(other *Value) *Value {
	left := v.ToInt()
	if left == 0 {
		return v
	}
	right := other.ToInt()
	return NewInt(int64(math.Mod(float64(left), float64(right))))
}

// Increment/Decrement specialize the Int fast path and otherwise fall
// through to Add/Sub with a constant 1.
func (v *Value) Increment() *Value {
	if v.IsInt() {
		return NewInt(v.Data.(int64) + 1)
	}
	return v.Add(NewInt(1))
}

func (v *Value) Decrement() *Value {
	if v.IsInt() {
		return NewInt(v.Data.(int64) - 1)
	}
	return v.Sub(NewInt(1))
}

// Compare implements the unified ordering rule:
// Int/Int compares as integers, Number/Number compares as doubles,
// anything else compares string forms byte-wise. Returns -1, 0, or 1.
func (v *Value) Compare(other *Value) int {
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	if v.IsNumber() && other.IsNumber() {
		a, b := v.ToFloat(), other.ToFloat()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(v.ToString(), other.ToString())
}

func (v *Value) GreaterThan(other *Value) bool        { return v.Compare(other) > 0 }
func (v *Value) GreaterThanOrEqual(other *Value) bool  { return v.Compare(other) >= 0 }
func (v *Value) LessThan(other *Value) bool            { return other.GreaterThan(v) }
func (v *Value) LessThanOrEqual(other *Value) bool     { return other.GreaterThanOrEqual(v) }
func (v *Value) Equals(other *Value) bool              { return v.Compare(other) == 0 }
func (v *Value) NotEquals(other *Value) bool            { return v.Compare(other) != 0 }

// Array operations

func canonicalArrayKey(key *Value) interface{} {
	switch key.Type {
	case TypeInt:
		return key.Data.(int64)
	case TypeFloat:
		return int64(key.Data.(float64))
	case TypeBool:
		if key.Data.(bool) {
			return int64(1)
		}
		return int64(0)
	case TypeString:
		s := key.str()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return s
	default:
		return key.ToString()
	}
}

// Put inserts or updates key -> value. A nil key auto-assigns the next
// integer index, PHP-array style.
func (a *Array) Put(key *Value, value *Value) {
	if key == nil {
		key = NewInt(a.nextIndex)
	}
	canon := canonicalArrayKey(key)
	if i, ok := canon.(int64); ok && i >= a.nextIndex {
		a.nextIndex = i + 1
	}
	if idx, exists := a.index[canon]; exists {
		a.values[idx] = value
		return
	}
	if a.index == nil {
		a.index = make(map[interface{}]int)
	}
	a.index[canon] = len(a.keys)
	a.keys = append(a.keys, key)
	a.values = append(a.values, value)
}

// Get returns the value stored at key and whether it was present.
func (a *Array) Get(key *Value) (*Value, bool) {
	idx, ok := a.index[canonicalArrayKey(key)]
	if !ok {
		return nil, false
	}
	return a.values[idx], true
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.keys) }

// ToIterator produces a snapshot iterator over the array's current
// contents; later mutation of the array does not affect it.
func (a *Array) ToIterator() *Iterator {
	pairs := make([]arrayPair, len(a.keys))
	for i := range a.keys {
		pairs[i] = arrayPair{Key: a.keys[i], Value: a.values[i]}
	}
	// Reverse, so that a cursor which decrements on every Next() call
	// yields the pairs back in their original forward order.
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return &Iterator{pairs: pairs, index: len(pairs)}
}

// Empty reports whether the iterator is exhausted.
func (it *Iterator) Empty() bool { return it.index == 0 }

// Next returns the next (key, value) pair in forward insertion order and
// advances the cursor. Calling Next on an exhausted iterator panics,
// matching the snapshot contract: callers must check Empty first.
func (it *Iterator) Next() (*Value, *Value) {
	it.index--
	pair := it.pairs[it.index]
	return pair.Key, pair.Value
}

// String renders the Array's short print form, in insertion order. See
// DESIGN.md for why this intentionally does not reproduce pyhp's
// accidental hash-dict iteration order.
func (a *Array) String() string {
	parts := make([]string, len(a.keys))
	for i := range a.keys {
		parts[i] = fmt.Sprintf("%s: %s", a.keys[i].ToString(), a.values[i].ToString())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
