package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/errors"
	"github.com/sprigvm/sprig/opcodes"
	"github.com/sprigvm/sprig/registry"
	"github.com/sprigvm/sprig/values"
)

// NullLit compiles to LOAD_NULL.
type NullLit struct{}

func (NullLit) Compile(ctx *Context) error {
	ctx.BC.Emit(opcodes.LoadNull{})
	return nil
}

// BoolLit compiles to LOAD_BOOL.
type BoolLit struct{ Value bool }

func (n BoolLit) Compile(ctx *Context) error {
	ctx.BC.Emit(opcodes.LoadBool{Value: n.Value})
	return nil
}

// IntLit compiles to LOAD_INT.
type IntLit struct{ Value int64 }

func (n IntLit) Compile(ctx *Context) error {
	ctx.BC.Emit(opcodes.LoadInt{Value: n.Value})
	return nil
}

// FloatLit compiles to LOAD_FLOAT.
type FloatLit struct{ Value float64 }

func (n FloatLit) Compile(ctx *Context) error {
	ctx.BC.Emit(opcodes.LoadFloat{Value: n.Value})
	return nil
}

// StringLit holds a literal as written in source, quote characters
// included — Compile unquotes and unescapes it, resolves any
// `$name`/`{$name[index]}` placeholders against the active Scope, and
// emits a single LOAD_STRING carrying pre-parsed parts.
type StringLit struct{ Raw string }

func (n StringLit) Compile(ctx *Context) error {
	body, placeholders, err := values.Unquote(n.Raw)
	if err != nil {
		return errors.New(errors.MalformedLiteral, "%v", err)
	}
	if len(placeholders) == 0 {
		unescaped, err := values.Unescape(body)
		if err != nil {
			return errors.New(errors.MalformedLiteral, "%v", err)
		}
		ctx.BC.Emit(opcodes.LoadString{Parts: []opcodes.StringPart{{Literal: unescaped}}})
		return nil
	}

	var parts []opcodes.StringPart
	cursor := 0
	for _, ph := range placeholders {
		if ph.Start > cursor {
			literal, err := values.Unescape(body[cursor:ph.Start])
			if err != nil {
				return errors.New(errors.MalformedLiteral, "%v", err)
			}
			parts = append(parts, opcodes.StringPart{Literal: literal})
		}
		slot, ok := ctx.Scope.Resolve(ph.Base)
		if !ok {
			return fmt.Errorf("ast: undeclared variable %q in string interpolation", ph.Base)
		}
		part := opcodes.StringPart{IsPlaceholder: true, Slot: slot}
		if ph.Index != "" {
			part.HasIndex = true
			// A "$y[$i]"-style index expression keeps its leading '$';
			// a literal "$y[1]" index doesn't. Try the bare name first.
			idxName := strings.TrimPrefix(ph.Index, "$")
			if idxSlot, ok := ctx.Scope.Resolve(idxName); ok {
				part.IndexSlot = idxSlot
			} else if iv, err := parseIndexLiteral(ph.Index); err == nil {
				part.IndexConst = iv
			} else {
				return fmt.Errorf("ast: unresolvable index expression %q", ph.Index)
			}
		}
		parts = append(parts, part)
		cursor = ph.End
	}
	if cursor < len(body) {
		literal, err := values.Unescape(body[cursor:])
		if err != nil {
			return errors.New(errors.MalformedLiteral, "%v", err)
		}
		parts = append(parts, opcodes.StringPart{Literal: literal})
	}
	ctx.BC.Emit(opcodes.LoadString{Parts: parts})
	return nil
}

func parseIndexLiteral(s string) (*values.Value, error) {
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return nil, err
	}
	return values.NewInt(n), nil
}

// VarRef compiles to LOAD_VAR, resolving Name to a slot (declaring a
// capture if it's only found in an ancestor scope).
type VarRef struct{ Name string }

func (n VarRef) Compile(ctx *Context) error {
	slot, ok := ctx.Scope.Resolve(n.Name)
	if !ok {
		return fmt.Errorf("ast: undeclared variable %q", n.Name)
	}
	ctx.BC.Emit(opcodes.LoadVar{Slot: slot})
	return nil
}

// Assign compiles Value, then STORE_VAR into Name's slot (declaring it
// if this is its first assignment).
type Assign struct {
	Name  string
	Value Node
}

func (n Assign) Compile(ctx *Context) error {
	if err := n.Value.Compile(ctx); err != nil {
		return err
	}
	slot := ctx.Scope.Declare(n.Name)
	ctx.BC.Emit(opcodes.StoreVar{Slot: slot})
	return nil
}

// BinaryOp compiles Left then Right then the opcode matching Op, one
// of: "+", "-", "*", "/", "%", ">", ">=", "<", "<=", "==", "!=".
type BinaryOp struct {
	Op          string
	Left, Right Node
}

func (n BinaryOp) Compile(ctx *Context) error {
	if err := n.Left.Compile(ctx); err != nil {
		return err
	}
	if err := n.Right.Compile(ctx); err != nil {
		return err
	}
	switch n.Op {
	case "+":
		ctx.BC.Emit(opcodes.Add{})
	case "-":
		ctx.BC.Emit(opcodes.Sub{})
	case "*":
		ctx.BC.Emit(opcodes.Mul{})
	case "/":
		ctx.BC.Emit(opcodes.Div{})
	case "%":
		ctx.BC.Emit(opcodes.Mod{})
	case ">":
		ctx.BC.Emit(opcodes.Gt{})
	case ">=":
		ctx.BC.Emit(opcodes.Ge{})
	case "<":
		ctx.BC.Emit(opcodes.Lt{})
	case "<=":
		ctx.BC.Emit(opcodes.Le{})
	case "==":
		ctx.BC.Emit(opcodes.Eq{})
	case "!=":
		ctx.BC.Emit(opcodes.Neq{})
	default:
		return fmt.Errorf("ast: unknown binary operator %q", n.Op)
	}
	return nil
}

// ArrayLit compiles each (Key, Value) pair — a nil Key compiles to the
// pair's positional index, PHP-list-literal style — then BUILD_ARRAY.
type ArrayLit struct {
	Keys   []Node // len(Keys) == len(Values); an entry may be nil
	Values []Node
}

func (n ArrayLit) Compile(ctx *Context) error {
	for i, val := range n.Values {
		key := n.Keys[i]
		if key == nil {
			key = IntLit{Value: int64(i)}
		}
		if err := key.Compile(ctx); err != nil {
			return err
		}
		if err := val.Compile(ctx); err != nil {
			return err
		}
	}
	ctx.BC.Emit(opcodes.BuildArray{Count: len(n.Values)})
	return nil
}

// Index compiles Array then Key then LOAD_ARRAY_ELEM.
type Index struct{ Array, Key Node }

func (n Index) Compile(ctx *Context) error {
	if err := n.Array.Compile(ctx); err != nil {
		return err
	}
	if err := n.Key.Compile(ctx); err != nil {
		return err
	}
	ctx.BC.Emit(opcodes.LoadArrayElem{})
	return nil
}

// IndexAssign compiles Array, Key, Value then STORE_ARRAY_ELEM.
type IndexAssign struct{ Array, Key, Value Node }

func (n IndexAssign) Compile(ctx *Context) error {
	if err := n.Array.Compile(ctx); err != nil {
		return err
	}
	if err := n.Key.Compile(ctx); err != nil {
		return err
	}
	if err := n.Value.Compile(ctx); err != nil {
		return err
	}
	ctx.BC.Emit(opcodes.StoreArrayElem{})
	return nil
}

// Print compiles Value then PRINT. Writer is forwarded to the emitted
// opcode (nil means the opcode defaults to os.Stdout).
type Print struct {
	Value  Node
	Writer io.Writer
}

func (n Print) Compile(ctx *Context) error {
	if err := n.Value.Compile(ctx); err != nil {
		return err
	}
	ctx.BC.Emit(opcodes.Print{Writer: n.Writer})
	return nil
}

// If compiles Cond, then Then, optionally Else, backpatching the
// conditional jump targets once each branch's extent is known.
type If struct {
	Cond       Node
	Then, Else []Node
}

func (n If) Compile(ctx *Context) error {
	if err := n.Cond.Compile(ctx); err != nil {
		return err
	}
	jumpToElseOrEnd := ctx.BC.NextIndex()
	ctx.BC.Emit(opcodes.JumpIfFalse{})
	if err := compileAll(ctx, n.Then); err != nil {
		return err
	}
	if len(n.Else) == 0 {
		ctx.BC.Patch(jumpToElseOrEnd, opcodes.JumpIfFalse{Target: ctx.BC.NextIndex()})
		return nil
	}
	jumpOverElse := ctx.BC.NextIndex()
	ctx.BC.Emit(opcodes.Jump{})
	ctx.BC.Patch(jumpToElseOrEnd, opcodes.JumpIfFalse{Target: ctx.BC.NextIndex()})
	if err := compileAll(ctx, n.Else); err != nil {
		return err
	}
	ctx.BC.Patch(jumpOverElse, opcodes.Jump{Target: ctx.BC.NextIndex()})
	return nil
}

// While compiles a pretest loop: Cond, a conditional exit jump, Body,
// an unconditional jump back to Cond.
type While struct {
	Cond Node
	Body []Node
}

func (n While) Compile(ctx *Context) error {
	loopStart := ctx.BC.NextIndex()
	if err := n.Cond.Compile(ctx); err != nil {
		return err
	}
	exitJump := ctx.BC.NextIndex()
	ctx.BC.Emit(opcodes.JumpIfFalse{})
	if err := compileAll(ctx, n.Body); err != nil {
		return err
	}
	ctx.BC.Emit(opcodes.Jump{Target: loopStart})
	ctx.BC.Patch(exitJump, opcodes.JumpIfFalse{Target: ctx.BC.NextIndex()})
	return nil
}

// Call compiles Callee then each Arg, then CALL.
type Call struct {
	Callee Node
	Args   []Node
}

func (n Call) Compile(ctx *Context) error {
	if err := n.Callee.Compile(ctx); err != nil {
		return err
	}
	for _, arg := range n.Args {
		if err := arg.Compile(ctx); err != nil {
			return err
		}
	}
	ctx.BC.Emit(opcodes.Call{ArgCount: len(n.Args), Exec: ctx.Exec})
	return nil
}

// Return compiles Value then RETURN.
type Return struct{ Value Node }

func (n Return) Compile(ctx *Context) error {
	if err := n.Value.Compile(ctx); err != nil {
		return err
	}
	ctx.BC.Emit(opcodes.Return{})
	return nil
}

// FuncLit compiles Body into a fresh Bytecode (its own Scope, seeded
// with Params as its first declared slots), then emits BUILD_FUNCTION
// in the enclosing Context, carrying whatever outer variables Body's
// Scope resolved as captures.
type FuncLit struct {
	Name   string
	Params []string
	Body   []Node
}

func (n FuncLit) Compile(ctx *Context) error {
	bodyBC := bytecode.New(0, nil, nil, nil)
	inner := ctx.Child(bodyBC)
	paramSlots := make([]int, len(n.Params))
	for i, p := range n.Params {
		paramSlots[i] = inner.Scope.Declare(p)
	}

	if err := compileAll(inner, n.Body); err != nil {
		return err
	}
	// Fall off the end with an implicit `return null;` if the body
	// didn't already end in one.
	inner.BC.Emit(opcodes.LoadNull{})
	inner.BC.Emit(opcodes.Return{})

	bodyBC.SymbolSize = inner.Scope.Size()
	bodyBC.Variables = inner.Scope.Names()
	bodyBC.Parameters = n.Params
	bodyBC.ParamSlots = paramSlots
	bodyBC.Compile()

	captureNames, parentSlots := inner.Scope.Captures()
	ctx.BC.Emit(opcodes.BuildFunction{
		Name:         n.Name,
		Body:         bodyBC,
		CaptureNames: captureNames,
		CaptureSlots: parentSlots,
	})
	return nil
}

// FuncDecl compiles Body into its own Bytecode and registers it in
// ctx.Registry under Name instead of emitting a value-producing
// opcode — a top-level `function foo(...) {...}` declaration is
// hoisted at compile time, not constructed at the point it appears.
// Unlike FuncLit, its Scope has no parent: named declarations don't
// close over the enclosing scope.
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Node
}

func (n FuncDecl) Compile(ctx *Context) error {
	bodyBC := bytecode.New(0, nil, nil, nil)
	inner := &Context{BC: bodyBC, Scope: NewScope(nil), Exec: ctx.Exec, Registry: ctx.Registry}
	paramSlots := make([]int, len(n.Params))
	for i, p := range n.Params {
		paramSlots[i] = inner.Scope.Declare(p)
	}

	if err := compileAll(inner, n.Body); err != nil {
		return err
	}
	inner.BC.Emit(opcodes.LoadNull{})
	inner.BC.Emit(opcodes.Return{})

	bodyBC.SymbolSize = inner.Scope.Size()
	bodyBC.Variables = inner.Scope.Names()
	bodyBC.Parameters = n.Params
	bodyBC.ParamSlots = paramSlots
	bodyBC.Compile()

	params := make([]registry.Parameter, len(n.Params))
	for i, p := range n.Params {
		params[i] = registry.Parameter{Name: p}
	}
	ctx.Registry.Define(&registry.Function{
		Name:       n.Name,
		Body:       bodyBC,
		Parameters: params,
	})
	return nil
}

// CallName compiles a call to a function declared with FuncDecl,
// resolved by name against ctx.Registry at call time rather than
// through a local variable holding a closure: LOAD_FUNCTION, then each
// Arg, then CALL.
type CallName struct {
	Name string
	Args []Node
}

func (n CallName) Compile(ctx *Context) error {
	ctx.BC.Emit(opcodes.LoadFunction{Name: n.Name, Table: ctx.Registry})
	for _, arg := range n.Args {
		if err := arg.Compile(ctx); err != nil {
			return err
		}
	}
	ctx.BC.Emit(opcodes.Call{ArgCount: len(n.Args), Exec: ctx.Exec})
	return nil
}

func compileAll(ctx *Context, nodes []Node) error {
	for _, n := range nodes {
		if err := n.Compile(ctx); err != nil {
			return err
		}
	}
	return nil
}
