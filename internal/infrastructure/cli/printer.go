package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/doeshing/stackctl/internal/ports"
)

const (
	ansiGreen  = "\033[92m"
	ansiRed    = "\033[91m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiReset  = "\033[0m"

	boxWidth = 60
)

type level struct {
	color string
	icon  string
	plain string
}

var (
	levelSuccess = level{ansiGreen, "✅ ", "[OK] "}
	levelError   = level{ansiRed, "❌ ", "[ERROR] "}
	levelWarning = level{ansiYellow, "⚠️  ", "[WARN] "}
	levelInfo    = level{ansiBlue, "ℹ️  ", "[INFO] "}
)

// Printer renders user-facing messages according to a Style.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	style Style
	title string
}

// NewPrinter builds a Printer writing to out. title is shown by Header.
func NewPrinter(out io.Writer, style Style, title string) *Printer {
	return &Printer{out: out, style: style, title: title}
}

// Style returns the capabilities the printer was built with.
func (p *Printer) Style() Style {
	return p.style
}

// Header prints the boxed tool title.
func (p *Printer) Header() {
	icon := ""
	if p.style.Icons {
		icon = "🚀 "
	}
	title := p.title
	if title == "" {
		title = "STACKCTL"
	}
	p.box(icon + title)
	p.Blank()
}

// Banner prints a boxed announcement.
func (p *Printer) Banner(title string) {
	icon := ""
	if p.style.Icons {
		icon = "🎉 "
	}
	p.box(icon + title)
}

func (p *Printer) Success(msg string) { p.emit(levelSuccess, msg) }
func (p *Printer) Error(msg string)   { p.emit(levelError, msg) }
func (p *Printer) Warning(msg string) { p.emit(levelWarning, msg) }
func (p *Printer) Info(msg string)    { p.emit(levelInfo, msg) }

// Plain prints msg without decoration.
func (p *Printer) Plain(msg string) {
	p.write(msg + "\n")
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	p.write("\n")
}

func (p *Printer) emit(l level, msg string) {
	prefix := l.plain
	if p.style.Icons {
		prefix = l.icon
	}
	line := prefix + msg
	if p.style.Color {
		line = l.color + line + ansiReset
	}
	p.write(line + "\n")
}

func (p *Printer) box(text string) {
	var b strings.Builder
	if p.style.Icons {
		inner := "         " + text
		// Emoji occupy two terminal columns.
		pad := boxWidth - 1 - runewidth.StringWidth(inner)
		if pad < 1 {
			pad = 1
		}
		b.WriteString("╔" + strings.Repeat("═", boxWidth) + "╗\n")
		b.WriteString("║" + inner + strings.Repeat(" ", pad) + "║\n")
		b.WriteString("╚" + strings.Repeat("═", boxWidth) + "╝\n")
	} else {
		rule := strings.Repeat("=", boxWidth+2)
		fmt.Fprintf(&b, "%s\n  %s\n%s\n", rule, text, rule)
	}
	p.write(b.String())
}

func (p *Printer) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.out, s)
}

var _ ports.Reporter = (*Printer)(nil)
