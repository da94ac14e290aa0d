package cli

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// Style is the terminal capability decision made once at startup and passed
// to the Printer. The zero value is plain ASCII output.
type Style struct {
	Color bool
	Icons bool
}

// DetectStyle inspects w and the environment. Color and icons are enabled only
// when w is a terminal, NO_COLOR is unset and the console is not a legacy
// Windows console.
func DetectStyle(w io.Writer) Style {
	return detectStyle(isTerminal(w), os.Getenv, runtime.GOOS)
}

func detectStyle(tty bool, getenv func(string) string, goos string) Style {
	if !tty || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return Style{}
	}
	if goos == "windows" && getenv("WT_SESSION") == "" && getenv("ANSICON") == "" {
		return Style{}
	}
	return Style{Color: true, Icons: true}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
