// Package compiler provides the thin glue that turns an ast.Node tree
// into a runnable bytecode.Bytecode, plus a textual bytecode-mnemonic
// assembler standing in for the out-of-scope surface-language parser.
// CompileAST is grounded on original_source/pyhp/bytecode.py's
// compile_ast function: construct a Bytecode from the scope, ask the
// AST to emit into it, freeze it.
package compiler

import (
	"github.com/sprigvm/sprig/ast"
	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/registry"
	"github.com/sprigvm/sprig/vm"
)

// CompileAST compiles a top-level program (a sequence of statements)
// into a frozen Bytecode, sharing exec across every CALL it emits
// (directly or in nested function literals) so their hot-spot
// observations land in the same counter. Programs with no top-level
// ast.FuncDecl get a private, empty registry.Table.
func CompileAST(program []ast.Node, exec *vm.Executor) (*bytecode.Bytecode, error) {
	return CompileASTWithRegistry(program, exec, registry.NewTable())
}

// CompileASTWithRegistry is CompileAST with a caller-supplied
// registry.Table, so named top-level ast.FuncDecl declarations and the
// ast.CallName sites that reference them resolve against the same
// table the caller can later inspect or reuse across compilations.
func CompileASTWithRegistry(program []ast.Node, exec *vm.Executor, table *registry.Table) (*bytecode.Bytecode, error) {
	bc := bytecode.New(0, nil, nil, nil)
	scope := ast.NewScope(nil)
	ctx := &ast.Context{BC: bc, Scope: scope, Exec: exec, Registry: table}

	for _, node := range program {
		if err := node.Compile(ctx); err != nil {
			return nil, err
		}
	}

	bc.SymbolSize = scope.Size()
	bc.Variables = scope.Names()
	return bc.Compile(), nil
}
