package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/jit"
	"github.com/sprigvm/sprig/vm"
)

// RunAssemblerREPL reads one bytecode-mnemonic instruction per line from
// an interactive readline session, assembling and running the whole
// accumulated program fresh after every line — since this execution
// core has no suspension points, there's no cheaper way to show
// intermediate state than re-running from pc 0 each time.
func RunAssemblerREPL(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sprig-asm> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var lines []string
	hooks := jit.NewHotSpotCounter(64)
	exec := vm.New(hooks)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ".reset" {
			lines = nil
			fmt.Fprintln(out, "program reset")
			continue
		}
		lines = append(lines, line)

		bc, err := Assemble(strings.Join(lines, "\n"))
		if err != nil {
			fmt.Fprintln(out, err)
			lines = lines[:len(lines)-1]
			continue
		}
		result, err := exec.Execute(bc, frame.New(bc.SymbolSize))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !result.IsNull() {
			fmt.Fprintln(out, result.ToString())
		}
	}
	return nil
}
