package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// interruptedExitCode is what a child killed by SIGINT usually reports.
const interruptedExitCode = 130

// Controller implements ports.ServiceController over one compose invocation form.
type Controller struct {
	runner    ports.ProcessRunner
	reporter  ports.Reporter
	logger    ports.Logger
	indicator ports.Indicator
	command   domain.ComposeCommand
	settings  domain.ComposeSettings
	endpoints []domain.Endpoint
	program   string
}

// Options carries the non-process collaborators of a Controller.
type Options struct {
	Reporter  ports.Reporter
	Logger    ports.Logger
	Indicator ports.Indicator
	Config    domain.Config
	// Program is the name users type to run this tool, used in hints.
	Program string
}

// NewController binds a controller to the detected compose command.
func NewController(runner ports.ProcessRunner, command domain.ComposeCommand, opts Options) *Controller {
	return &Controller{
		runner:    runner,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
		indicator: opts.Indicator,
		command:   command,
		settings:  opts.Config.Compose,
		endpoints: opts.Config.Endpoints,
		program:   opts.Program,
	}
}

// Factory returns a ports.ControllerFactory producing controllers with opts.
func Factory(runner ports.ProcessRunner, opts Options) ports.ControllerFactory {
	return func(command domain.ComposeCommand) ports.ServiceController {
		return NewController(runner, command, opts)
	}
}

// Start brings the stack up detached and prints the access endpoints.
func (c *Controller) Start(ctx context.Context) error {
	c.reporter.Info("Starting services...")
	if err := c.quiet(ctx, "up", "up", "-d"); err != nil {
		c.reporter.Error("Failed to start services")
		return err
	}
	c.reporter.Success("Services started")
	c.printAccess()
	return nil
}

// Stop tears the stack down.
func (c *Controller) Stop(ctx context.Context) error {
	c.reporter.Info("Stopping services...")
	if err := c.quiet(ctx, "down", "down"); err != nil {
		c.reporter.Error("Failed to stop services")
		return err
	}
	c.reporter.Success("Services stopped")
	return nil
}

// Restart restarts every service of the stack.
func (c *Controller) Restart(ctx context.Context) error {
	c.reporter.Info("Restarting services...")
	if err := c.quiet(ctx, "restart", "restart"); err != nil {
		c.reporter.Error("Failed to restart services")
		return err
	}
	c.reporter.Success("Services restarted")
	return nil
}

// Status lists the stack's containers. A failing listing is informational only.
func (c *Controller) Status(ctx context.Context) error {
	c.reporter.Info("Service Status:")
	cctx, cancel := context.WithTimeout(ctx, domain.DefaultComposeTimeout)
	defer cancel()
	res := c.runner.Run(cctx, c.command.Program, c.args("ps")...)
	if !res.Succeeded() && ctx.Err() == nil {
		c.logger.Warn("status listing failed", map[string]interface{}{"code": res.Code})
		c.reporter.Warning(fmt.Sprintf("%s ps exited with code %d", c.command, res.Code))
	}
	return nil
}

// Logs follows the stack's logs in the foreground until the child exits or
// the user interrupts. An interrupt is not an error.
func (c *Controller) Logs(ctx context.Context) error {
	c.reporter.Info("Showing logs (Press Ctrl+C to exit)...")
	res := c.runner.Run(ctx, c.command.Program, c.args("logs", "-f")...)
	if ctx.Err() != nil || res.Code == interruptedExitCode {
		c.reporter.Blank()
		c.reporter.Info("Stopped viewing logs")
		return nil
	}
	if !res.Succeeded() {
		return domain.NewError(domain.KindCommandFailed, "logs", fmt.Errorf("%s logs exited with code %d", c.command, res.Code))
	}
	return nil
}

// quiet runs a compose subcommand with captured output behind the indicator.
func (c *Controller) quiet(ctx context.Context, op string, sub ...string) error {
	cctx, cancel := context.WithTimeout(ctx, domain.DefaultComposeTimeout)
	defer cancel()
	if c.indicator != nil {
		c.indicator.Start()
	}
	res := c.runner.Capture(cctx, c.command.Program, c.args(sub...)...)
	if c.indicator != nil {
		c.indicator.Stop()
	}
	if ctx.Err() != nil {
		return domain.ErrCancelled
	}
	if res.Succeeded() {
		return nil
	}
	c.logger.Error("compose command failed", res.Err, map[string]interface{}{"op": op, "code": res.Code})
	if out := strings.TrimSpace(res.Output); out != "" {
		for _, line := range strings.Split(out, "\n") {
			c.reporter.Plain(line)
		}
	}
	return domain.NewError(domain.KindCommandFailed, op, fmt.Errorf("%s %s exited with code %d", c.command, op, res.Code))
}

// args prefixes sub with the compose base args plus configured -f/-p flags.
func (c *Controller) args(sub ...string) []string {
	var extra []string
	for _, f := range c.settings.Files {
		extra = append(extra, "-f", f)
	}
	if p := strings.TrimSpace(c.settings.Project); p != "" {
		extra = append(extra, "-p", p)
	}
	return c.command.Args(append(extra, sub...)...)
}

func (c *Controller) printAccess() {
	c.reporter.Blank()
	c.reporter.Banner("SERVER STARTED SUCCESSFULLY!")
	c.reporter.Blank()
	if len(c.endpoints) > 0 {
		c.reporter.Plain("Access URLs:")
		width := 0
		for _, e := range c.endpoints {
			width = max(width, len(e.Name)+1)
		}
		for _, e := range c.endpoints {
			line := fmt.Sprintf("   - %-*s %s", width, e.Name+":", e.URL)
			if e.Note != "" {
				line += " (" + e.Note + ")"
			}
			c.reporter.Plain(line)
		}
		c.reporter.Blank()
	}
	if c.program != "" {
		c.reporter.Plain("Useful commands:")
		c.reporter.Plain(fmt.Sprintf("   %s logs     - View logs", c.program))
		c.reporter.Plain(fmt.Sprintf("   %s stop     - Stop services", c.program))
		c.reporter.Plain(fmt.Sprintf("   %s restart  - Restart services", c.program))
		c.reporter.Blank()
	}
}

var _ ports.ServiceController = (*Controller)(nil)
