// Command sprig is a thin CLI wrapper around the execution core: a
// `demo` subcommand that runs a small built-in program end to end, an
// `asm` subcommand that opens an interactive bytecode-assembly REPL,
// and a `version` subcommand.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sprigvm/sprig/ast"
	"github.com/sprigvm/sprig/compiler"
	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/jit"
	"github.com/sprigvm/sprig/version"
	"github.com/sprigvm/sprig/vm"
)

func main() {
	app := &cli.Command{
		Name:  "sprig",
		Usage: "A dynamic-language execution core",
		Commands: []*cli.Command{
			demoCommand,
			asmCommand,
			versionCommand,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Show version",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		fmt.Println(version.Version())
		return nil
	},
}

var asmCommand = &cli.Command{
	Name:  "asm",
	Usage: "Start an interactive bytecode-assembly REPL",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return compiler.RunAssemblerREPL(os.Stdout)
	},
}

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "Compile and run a small built-in program",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runDemo()
	},
}

// runDemo builds the AST for:
//
//	$total = 0;
//	$i = 0;
//	while ($i < 10) {
//	    $total = $total + $i;
//	    $i = $i + 1;
//	}
//	print "total: $total";
//
// compiles it, runs it under a hot-spot-counting Executor, and prints
// which program counters the loop's back edge drove over threshold.
func runDemo() error {
	program := []ast.Node{
		ast.Assign{Name: "total", Value: ast.IntLit{Value: 0}},
		ast.Assign{Name: "i", Value: ast.IntLit{Value: 0}},
		ast.While{
			Cond: ast.BinaryOp{Op: "<", Left: ast.VarRef{Name: "i"}, Right: ast.IntLit{Value: 10}},
			Body: []ast.Node{
				ast.Assign{
					Name: "total",
					Value: ast.BinaryOp{
						Op:   "+",
						Left: ast.VarRef{Name: "total"},
						Right: ast.VarRef{Name: "i"},
					},
				},
				ast.Assign{
					Name: "i",
					Value: ast.BinaryOp{
						Op:    "+",
						Left:  ast.VarRef{Name: "i"},
						Right: ast.IntLit{Value: 1},
					},
				},
			},
		},
		ast.Print{Value: ast.StringLit{Raw: `"total: $total"`}},
	}

	hooks := jit.NewHotSpotCounter(4)
	exec := vm.New(hooks)

	bc, err := compiler.CompileAST(program, exec)
	if err != nil {
		return err
	}
	if _, err := exec.Execute(bc, frame.New(bc.SymbolSize)); err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("hot-spot program counters: %v\n", hooks.HotSpots())
	return nil
}
