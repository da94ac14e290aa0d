package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/stackctl/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	Binary  string
	Out     io.Writer
	Err     io.Writer
}

// NewRootCmd wires the cobra root command. Arguments are handed to the
// dispatcher untouched, so help flags arrive as ordinary tokens.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	if opts.Binary == "" {
		opts.Binary = "stackctl"
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	printer := NewPrinter(opts.Out, DetectStyle(opts.Out), "")
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:   opts.Verbose,
		Binary:    opts.Binary,
		Reporter:  printer,
		Indicator: NewSpinner(opts.Err, isTerminal(opts.Err)),
	})
	if err != nil {
		return nil, err
	}
	printer.title = container.Config.Title

	root := &cobra.Command{
		Use:                opts.Binary + " [command]",
		Short:              "Bootstrap and run the local application stack",
		Long:               "Checks prerequisites, provisions configuration and secrets on first run, builds the application and drives the container stack.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer container.Close()
			return container.Dispatcher.Dispatch(cmd.Context(), args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		_ = container.Workflows.Help(cmd.Context())
	})
	return root, nil
}
