package compiler_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/sprigvm/sprig/ast"
	"github.com/sprigvm/sprig/compiler"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/vm"
)

// TestPrintScenarioSnapshots snapshot-tests the observable `print` output
// of each concrete interpolation/array/bool scenario, the same way
// fixture-style interpreter tests snapshot their captured stdout.
func TestPrintScenarioSnapshots(t *testing.T) {
	scenarios := []struct {
		name    string
		program func(buf *bytes.Buffer) []ast.Node
	}{
		{
			name: "single_quoted_literal",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "x", Value: ast.StringLit{Raw: `'Hello world'`}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
		{
			name: "single_quoted_no_interpolation",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
					ast.Assign{Name: "z", Value: ast.IntLit{Value: 1}},
					ast.Assign{Name: "x", Value: ast.StringLit{Raw: `'Hello $y $z'`}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
		{
			name: "double_quoted_bare_placeholders",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
					ast.Assign{Name: "z", Value: ast.IntLit{Value: 1}},
					ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello $y $z"`}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
		{
			name: "double_quoted_curly_placeholder",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "y", Value: ast.StringLit{Raw: `'world'`}},
					ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello {$y}"`}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
		{
			name: "double_quoted_indexed_curly_placeholder",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "y", Value: ast.ArrayLit{
						Keys:   []ast.Node{nil},
						Values: []ast.Node{ast.StringLit{Raw: `'world'`}},
					}},
					ast.Assign{Name: "i", Value: ast.IntLit{Value: 0}},
					ast.Assign{Name: "x", Value: ast.StringLit{Raw: `"Hello {$y[$i]}"`}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
		{
			name: "array_element_after_assignment",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
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
					ast.Print{Value: ast.Index{Array: ast.VarRef{Name: "x"}, Key: ast.IntLit{Value: 1}}, Writer: buf},
				}
			},
		},
		{
			name: "bool_renders_true_false",
			program: func(buf *bytes.Buffer) []ast.Node {
				return []ast.Node{
					ast.Assign{Name: "x", Value: ast.BoolLit{Value: true}},
					ast.Print{Value: ast.VarRef{Name: "x"}, Writer: buf},
				}
			},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var buf bytes.Buffer
			program := sc.program(&buf)
			bc, err := compiler.CompileAST(program, vm.New(nil))
			require.NoError(t, err)
			_, err = vm.New(nil).Execute(bc, frame.New(bc.SymbolSize))
			require.NoError(t, err)
			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
