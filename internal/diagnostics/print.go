package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// colorFor decides whether w should receive ANSI color codes, the same
// TTY check the teacher's terminal builtins perform before emitting
// cursor/color control sequences (internal/evaluator/builtins_term.go).
func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Print writes one diagnostic per line to w, colorizing the code when w
// is a terminal.
func Print(w io.Writer, diags []*Diagnostic) {
	color := colorFor(w)
	for _, d := range diags {
		if color {
			fmt.Fprintf(w, "%s%s%s %s: %s\n", ansiRed, d.Code, ansiReset, d.Token.Pos(), d.Message)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", d.Code, d.Token.Pos(), d.Message)
		}
	}
}
