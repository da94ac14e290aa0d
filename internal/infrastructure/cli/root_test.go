package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/doeshing/stackctl/internal/domain"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirTemp(t)
	t.Setenv("STACKCTL_CONFIG", "")
	var out, errOut bytes.Buffer
	root, err := NewRootCmd(context.Background(), Options{Out: &out, Err: &errOut})
	if err != nil {
		t.Fatalf("NewRootCmd error: %v", err)
	}
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHelpFlagsReachDispatcher(t *testing.T) {
	for _, arg := range []string{"--help", "-h", "HELP"} {
		out, err := executeRoot(t, arg)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", arg, err)
		}
		if !strings.Contains(out, "Usage: stackctl [command]") || !strings.Contains(out, "SECURE MESSENGER - QUICK START") {
			t.Fatalf("%s: unexpected output:\n%s", arg, out)
		}
	}
}

func TestRootUnknownCommand(t *testing.T) {
	out, err := executeRoot(t, "deploy")
	if domain.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
	if !strings.Contains(out, "Unknown command: deploy") || !strings.Contains(out, "Run 'stackctl --help' for usage") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRootRejectsExtraArguments(t *testing.T) {
	out, err := executeRoot(t, "start", "now")
	if domain.KindOf(err) != domain.KindUnknownCommand {
		t.Fatalf("expected unknown-command, got %v", err)
	}
	if !strings.Contains(out, "Expected at most one command, got 2") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRootBlankArgumentIsNotStart(t *testing.T) {
	for _, arg := range []string{"", " "} {
		out, err := executeRoot(t, arg)
		if domain.ExitCode(err) != 2 {
			t.Fatalf("%q: expected exit code 2, got %v", arg, err)
		}
		if !strings.Contains(out, "Unknown command:") || strings.Contains(out, "Running installation first") {
			t.Fatalf("%q: unexpected output:\n%s", arg, out)
		}
	}
}

// chdirTemp changes into a fresh temp dir and restores the previous working
// directory on cleanup (equivalent of t.Chdir, which needs Go 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
