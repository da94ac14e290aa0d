package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := cli.Options{Verbose: isVerbose(), Out: stdout, Err: stderr}
	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return exitStatus(ctx, root.ExecuteContext(ctx), stdout, stderr)
}

// exitStatus turns the outcome of a command into the process exit code.
// Interruption is a clean exit.
func exitStatus(ctx context.Context, err error, stdout, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrCancelled) || ctx.Err() != nil:
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Operation cancelled by user")
		return 0
	case domain.KindOf(err) == "":
		// Classified failures were already reported by the workflow.
		fmt.Fprintln(stderr, "An error occurred:", err)
	}
	return domain.ExitCode(err)
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("STACKCTL_DEBUG"), "1") || strings.EqualFold(os.Getenv("STACKCTL_DEBUG"), "true")
}
