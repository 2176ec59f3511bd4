package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTrue(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want bool
	}{
		{"null", NewNull(), false},
		{"bool true", NewBool(true), true},
		{"bool false", NewBool(false), false},
		{"int zero", NewInt(0), false},
		{"int nonzero", NewInt(5), true},
		{"float zero", NewFloat(0), false},
		{"float nonzero", NewFloat(0.5), true},
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("0"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.IsTrue())
		})
	}
}

func TestToIntStringCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{"42abc", 42},
		{"  42", 42},
		{"-7", -7},
		{"3.9", 3},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewString(tt.in).ToInt(), "input %q", tt.in)
	}
}

func TestAddOverflowPromotesToFloat(t *testing.T) {
	a := NewInt(9223372036854775807)
	b := NewInt(1)
	result := a.Add(b)
	assert.Equal(t, TypeFloat, result.Type)
}

func TestAddKeepsIntWithoutOverflow(t *testing.T) {
	result := NewInt(2).Add(NewInt(3))
	assert.Equal(t, TypeInt, result.Type)
	assert.Equal(t, int64(5), result.Data.(int64))
}

func TestAddStringConcatenationMutatesInPlace(t *testing.T) {
	left := NewString("hello ")
	alias := left
	result := left.Add(NewString("world"))
	assert.Same(t, left, result)
	assert.Equal(t, "hello world", alias.ToString())
}

func TestAddConcatenatesNonStringRightOperand(t *testing.T) {
	left := NewString("count: ")
	result := left.Add(NewInt(3))
	assert.Equal(t, "count: 3", result.ToString())
}

func TestDivCollapsesToIntWhenExact(t *testing.T) {
	result := NewInt(10).Div(NewInt(2))
	assert.Equal(t, TypeInt, result.Type)
	assert.Equal(t, int64(5), result.Data.(int64))
}

func TestDivStaysFloatWhenInexact(t *testing.T) {
	result := NewInt(10).Div(NewInt(3))
	assert.Equal(t, TypeFloat, result.Type)
}

func TestModLeftZeroShortCircuits(t *testing.T) {
	left := NewInt(0)
	result := left.Mod(NewInt(5))
	assert.Same(t, left, result)
}

func TestModFollowsFmodSignRules(t *testing.T) {
	result := NewInt(-7).Mod(NewInt(3))
	assert.Equal(t, int64(-1), result.Data.(int64))
}

func TestCompareDerivesLtLeFromGtGe(t *testing.T) {
	a, b := NewInt(1), NewInt(2)
	assert.True(t, a.LessThan(b))
	assert.True(t, a.LessThanOrEqual(b))
	assert.False(t, b.LessThan(a.Add(NewInt(1))))
	assert.True(t, b.GreaterThan(a))
}

func TestArrayPreservesInsertionOrder(t *testing.T) {
	arr := NewArrayValue().Data.(*Array)
	arr.Put(NewInt(1), NewString("a"))
	arr.Put(NewInt(0), NewString("b"))
	arr.Put(NewInt(2), NewString("c"))
	assert.Equal(t, "[1: a, 0: b, 2: c]", arr.String())
}

func TestArrayGetAfterPutRoundTrips(t *testing.T) {
	arr := NewArrayValue().Data.(*Array)
	key := NewString("x")
	val := NewInt(99)
	arr.Put(key, val)
	got, ok := arr.Get(NewString("x"))
	assert.True(t, ok)
	assert.Same(t, val, got)
}

func TestArrayMissingKeyReportsNotFound(t *testing.T) {
	arr := NewArrayValue().Data.(*Array)
	_, ok := arr.Get(NewString("nope"))
	assert.False(t, ok)
}

func TestArrayIteratorYieldsForwardOrder(t *testing.T) {
	arr := NewArrayValue().Data.(*Array)
	arr.Put(nil, NewInt(1))
	arr.Put(nil, NewInt(2))
	arr.Put(nil, NewInt(3))

	it := arr.ToIterator()
	var seen []int64
	for !it.Empty() {
		_, v := it.Next()
		seen = append(seen, v.Data.(int64))
	}
	assert.Equal(t, []int64{1, 2, 3}, seen)
}

func TestUnquoteSingleQuotedHasNoPlaceholders(t *testing.T) {
	body, placeholders, err := Unquote(`'Hello $y'`)
	assert.NoError(t, err)
	assert.Equal(t, "Hello $y", body)
	assert.Empty(t, placeholders)
}

func TestUnquoteDoubleQuotedBarePlaceholder(t *testing.T) {
	body, placeholders, err := Unquote(`"Hello $y $z"`)
	assert.NoError(t, err)
	assert.Equal(t, "Hello $y $z", body)
	assert.Len(t, placeholders, 2)
	assert.Equal(t, "y", placeholders[0].Base)
	assert.Equal(t, "z", placeholders[1].Base)
}

func TestUnquoteCurlyPlaceholderWithIndex(t *testing.T) {
	body, placeholders, err := Unquote(`"Hello {$y[$i]}"`)
	assert.NoError(t, err)
	assert.Equal(t, "Hello {$y[$i]}", body)
	assert.Len(t, placeholders, 1)
	assert.Equal(t, "y", placeholders[0].Base)
	assert.Equal(t, "$i", placeholders[0].Index)
}

func TestUnescapeHandlesTable(t *testing.T) {
	out, err := Unescape(`a\nb\tc\\d\'e`)
	assert.NoError(t, err)
	assert.Equal(t, "a\nb\tc\\d'e", out)
}

func TestUnescapeTrailingBackslashErrors(t *testing.T) {
	_, err := Unescape(`abc\`)
	assert.Error(t, err)
}

func TestUnescapeUnknownEscapeDropsBackslash(t *testing.T) {
	out, err := Unescape(`\q`)
	assert.NoError(t, err)
	assert.Equal(t, `q`, out)
}

func TestUnescapeBackslashBeforeNewlineIsErased(t *testing.T) {
	out, err := Unescape("line1\\\nline2")
	assert.NoError(t, err)
	assert.Equal(t, "line1\nline2", out)
}
