package opcodes

import (
	"io"
	"os"

	"github.com/sprigvm/sprig/frame"
	"github.com/sprigvm/sprig/values"
)

// Print pops a value and writes its string form to Writer (os.Stdout
// when nil), the only form of output this execution core performs —
// I/O beyond print is out of scope.
type Print struct{ Writer io.Writer }

func (op Print) Eval(f *frame.Frame) (*values.Value, bool) {
	w := op.Writer
	if w == nil {
		w = os.Stdout
	}
	io.WriteString(w, f.Pop().ToString())
	return nil, false
}
