package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPrinterPlainStyle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Style{}, "SECURE MESSENGER - QUICK START")
	p.Header()
	p.Success("Docker is running")
	p.Error("Build failed!")
	p.Warning("Some tests failed")
	p.Info("Checking Docker...")
	p.Plain("   - Application: http://localhost:8080")

	out := buf.String()
	for _, want := range []string{
		"  SECURE MESSENGER - QUICK START\n",
		"[OK] Docker is running\n",
		"[ERROR] Build failed!\n",
		"[WARN] Some tests failed\n",
		"[INFO] Checking Docker...\n",
		"   - Application: http://localhost:8080\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("plain style must not emit escape codes:\n%q", out)
	}
}

func TestPrinterColorStyle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Style{Color: true, Icons: true}, "")
	p.Success("Services started")
	p.Banner("SERVER STARTED SUCCESSFULLY!")

	out := buf.String()
	if !strings.HasPrefix(out, ansiGreen+"✅ Services started"+ansiReset+"\n") {
		t.Fatalf("unexpected success line %q", out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "🎉 SERVER STARTED SUCCESSFULLY!") {
		t.Fatalf("unexpected banner:\n%s", out)
	}
}

func TestPrinterHeaderFallsBackToToolName(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, Style{}, "").Header()
	if !strings.Contains(buf.String(), "STACKCTL") {
		t.Fatalf("unexpected header %q", buf.String())
	}
}

func TestPrinterBoxBordersAlignWithWideIcons(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Style{Icons: true}, "SECURE MESSENGER - QUICK START")
	p.Header()
	p.Banner("INSTALLATION COMPLETE!")

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "╔") || strings.HasPrefix(line, "║") || strings.HasPrefix(line, "╚") {
			lines = append(lines, line)
		}
	}
	if len(lines) != 6 {
		t.Fatalf("expected two boxes of three lines, got %d:\n%s", len(lines), buf.String())
	}
	want := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		if got := runewidth.StringWidth(line); got != want {
			t.Fatalf("line %q is %d columns wide, want %d", line, got, want)
		}
	}
	if !strings.HasSuffix(lines[1], " ║") || !strings.Contains(lines[1], "🚀 SECURE MESSENGER") {
		t.Fatalf("unexpected header row %q", lines[1])
	}
}
