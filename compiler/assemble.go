package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprigvm/sprig/bytecode"
	"github.com/sprigvm/sprig/opcodes"
)

// Assemble compiles a tiny textual bytecode-mnemonic language into a
// frozen Bytecode. One instruction per non-blank, non-comment line;
// `#` starts a line comment. This is the assembler the `sprig asm` REPL
// drives, standing in for the out-of-scope surface-language parser —
// it addresses locals by slot number directly rather than by name.
//
// Supported mnemonics: LOAD_NULL, LOAD_BOOL <true|false>, LOAD_INT <n>,
// LOAD_FLOAT <n>, LOAD_STRING <"text">, LOAD_VAR <slot>,
// STORE_VAR <slot>, DECLARE_VAR <slot>, ADD, SUB, MUL, DIV, MOD, INC,
// DEC, GT, GE, LT, LE, EQ, NEQ, JUMP <pc>, JUMP_IF_FALSE <pc>,
// JUMP_IF_TRUE <pc>, BUILD_ARRAY <count>, BUILD_LIST <count>,
// LOAD_ARRAY_ELEM, STORE_ARRAY_ELEM, CALL <argCount>, RETURN, PRINT.
func Assemble(source string) (*bytecode.Bytecode, error) {
	maxSlot := -1
	var ops []bytecode.Opcode

	for lineNo, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		mnemonic := strings.ToUpper(fields[0])
		args := fields[1:]

		op, slot, err := assembleOne(mnemonic, args, line)
		if err != nil {
			return nil, fmt.Errorf("compiler: line %d: %w", lineNo+1, err)
		}
		if slot > maxSlot {
			maxSlot = slot
		}
		ops = append(ops, op)
	}

	bc := bytecode.New(maxSlot+1, nil, nil, nil)
	for _, op := range ops {
		bc.Emit(op)
	}
	return bc.Compile(), nil
}

func assembleOne(mnemonic string, args []string, line string) (op bytecode.Opcode, slot int, err error) {
	slot = -1
	switch mnemonic {
	case "LOAD_NULL":
		return opcodes.LoadNull{}, slot, nil
	case "LOAD_BOOL":
		b, err := strconv.ParseBool(arg(args, 0))
		return opcodes.LoadBool{Value: b}, slot, err
	case "LOAD_INT":
		n, err := strconv.ParseInt(arg(args, 0), 10, 64)
		return opcodes.LoadInt{Value: n}, slot, err
	case "LOAD_FLOAT":
		f, err := strconv.ParseFloat(arg(args, 0), 64)
		return opcodes.LoadFloat{Value: f}, slot, err
	case "LOAD_STRING":
		text := strings.Join(args, " ")
		text = strings.TrimPrefix(text, `"`)
		text = strings.TrimSuffix(text, `"`)
		return opcodes.LoadString{Parts: []opcodes.StringPart{{Literal: text}}}, slot, nil
	case "LOAD_VAR":
		s, err := strconv.Atoi(arg(args, 0))
		return opcodes.LoadVar{Slot: s}, s, err
	case "STORE_VAR":
		s, err := strconv.Atoi(arg(args, 0))
		return opcodes.StoreVar{Slot: s}, s, err
	case "DECLARE_VAR":
		s, err := strconv.Atoi(arg(args, 0))
		return opcodes.DeclareVar{Slot: s}, s, err
	case "ADD":
		return opcodes.Add{}, slot, nil
	case "SUB":
		return opcodes.Sub{}, slot, nil
	case "MUL":
		return opcodes.Mul{}, slot, nil
	case "DIV":
		return opcodes.Div{}, slot, nil
	case "MOD":
		return opcodes.Mod{}, slot, nil
	case "INC":
		return opcodes.Inc{}, slot, nil
	case "DEC":
		return opcodes.Dec{}, slot, nil
	case "GT":
		return opcodes.Gt{}, slot, nil
	case "GE":
		return opcodes.Ge{}, slot, nil
	case "LT":
		return opcodes.Lt{}, slot, nil
	case "LE":
		return opcodes.Le{}, slot, nil
	case "EQ":
		return opcodes.Eq{}, slot, nil
	case "NEQ":
		return opcodes.Neq{}, slot, nil
	case "JUMP":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.Jump{Target: n}, slot, err
	case "JUMP_IF_FALSE":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.JumpIfFalse{Target: n}, slot, err
	case "JUMP_IF_TRUE":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.JumpIfTrue{Target: n}, slot, err
	case "BUILD_ARRAY":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.BuildArray{Count: n}, slot, err
	case "BUILD_LIST":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.BuildList{Count: n}, slot, err
	case "LOAD_ARRAY_ELEM":
		return opcodes.LoadArrayElem{}, slot, nil
	case "STORE_ARRAY_ELEM":
		return opcodes.StoreArrayElem{}, slot, nil
	case "CALL":
		n, err := strconv.Atoi(arg(args, 0))
		return opcodes.Call{ArgCount: n}, slot, err
	case "RETURN":
		return opcodes.Return{}, slot, nil
	case "PRINT":
		return opcodes.Print{}, slot, nil
	default:
		return nil, slot, fmt.Errorf("unknown mnemonic %q in line %q", mnemonic, line)
	}
}

func arg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}
