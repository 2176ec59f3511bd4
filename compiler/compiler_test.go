package compiler_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprigvm/sprig/ast"
	"github.com/sprigvm/sprig/compiler"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/vm"
)

func TestPrintSingleQuotedLiteral(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "x", Value: ast.StringLit{Raw: `'Hello world'`}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", buf.String())
}

func TestPrintSingleQuotedDoesNotInterpolate(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
		ast.Assign{Name: "z", Value: ast.IntLit{Value: 1}},
		ast.Assign{Name: "x", Value: ast.StringLit{Raw: `'Hello $y $z'`}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "Hello $y $z", buf.String())
}

func TestPrintDoubleQuotedInterpolatesBarePlaceholders(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
		ast.Assign{Name: "z", Value: ast.IntLit{Value: 1}},
		ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello $y $z"`}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "Hello world 1", buf.String())
}

func TestPrintDoubleQuotedInterpolatesCurlyPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
		ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello {$y}"`}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", buf.String())
}

func TestPrintDoubleQuotedInterpolatesIndexedCurlyPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "y", Value: ast.ArrayLit{
			Keys:   []ast.Node{nil},
			Values: []ast.Node{ast.StringLit{Raw: `'world'`}},
		}},
		ast.Assign{Name: "i", Value: ast.IntLit{Value: 0}},
		ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello {$y[$i]}"`}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", buf.String())
}

func TestPrintArrayElementAfterAssignment(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "x", Value: ast.ArrayLit{
			Keys: []ast.Node{nil, nil, nil},
			Values: []ast.Node{
				ast.IntLit{Value: 1},
				ast.IntLit{Value: 2},
				ast.IntLit{Value: 3},
			},
		}},
		ast.IndexAssign{
			Array: ast.VarRef{Name: "x"},
			Key:   ast.IntLit{Value: 1},
			Value: ast.IntLit{Value: 5},
		},
		ast.Print{Value: ast.Index{Array: ast.VarRef{Name: "x"}, Key: ast.IntLit{Value: 1}}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "5", buf.String())
}

func TestPrintBoolRendersTrueFalse(t *testing.T) {
	var buf bytes.Buffer
	program := []ast.Node{
		ast.Assign{Name: "x", Value: ast.BoolLit{Value: true}},
		ast.Print{Value: ast.VarRef{Name: "x"}, Writer: &buf},
	}
	bc, err := compiler.CompileAST(program, vm.New(nil))
	require.NoError(t, err)
	_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
	require.NoError(t, err)
	assert.Equal(t, "true", buf.String())
}
