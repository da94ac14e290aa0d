// Package dispatch maps the single command-line token to a workflow.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// Workflows is the set of operations a token can select.
type Workflows interface {
	Install(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Logs(ctx context.Context) error
	Status(ctx context.Context) error
	Test(ctx context.Context) error
	Help(ctx context.Context) error
}

var routes = map[string]domain.Workflow{
	"install": domain.WorkflowInstall,
	"start":   domain.WorkflowStart,
	"stop":    domain.WorkflowStop,
	"restart": domain.WorkflowRestart,
	"logs":    domain.WorkflowLogs,
	"status":  domain.WorkflowStatus,
	"test":    domain.WorkflowTest,
	"help":    domain.WorkflowHelp,
	"--help":  domain.WorkflowHelp,
	"-h":      domain.WorkflowHelp,
}

// Dispatcher routes tokens to workflows.
type Dispatcher struct {
	workflows Workflows
	reporter  ports.Reporter
	logger    ports.Logger
	binary    string
	configErr error
}

// New builds a Dispatcher. binary is the program name used in hints.
func New(workflows Workflows, reporter ports.Reporter, logger ports.Logger, binary string) *Dispatcher {
	return &Dispatcher{workflows: workflows, reporter: reporter, logger: logger, binary: binary}
}

// WithConfigError makes every workflow except help fail with err. Help keeps
// working when the settings file is broken.
func (d *Dispatcher) WithConfigError(err error) *Dispatcher {
	d.configErr = err
	return d
}

// Resolve maps an explicit token to a workflow, ignoring case. An empty or
// blank token is not a command.
func Resolve(token string) (domain.Workflow, bool) {
	wf, ok := routes[strings.ToLower(token)]
	return wf, ok
}

// Dispatch runs the workflow selected by args. No argument selects start;
// unknown tokens and extra arguments are reported without running anything.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) error {
	wf := domain.WorkflowStart
	switch len(args) {
	case 0:
	case 1:
		var ok bool
		if wf, ok = Resolve(args[0]); !ok {
			d.reporter.Error(fmt.Sprintf("Unknown command: %s", args[0]))
			d.reporter.Info(fmt.Sprintf("Run '%s --help' for usage", d.binary))
			return domain.NewError(domain.KindUnknownCommand, "dispatch", fmt.Errorf("unknown command %q", args[0]))
		}
	default:
		d.reporter.Error(fmt.Sprintf("Expected at most one command, got %d", len(args)))
		d.reporter.Info(fmt.Sprintf("Run '%s --help' for usage", d.binary))
		return domain.NewError(domain.KindUnknownCommand, "dispatch", fmt.Errorf("too many arguments: %q", args))
	}
	if d.configErr != nil && wf != domain.WorkflowHelp {
		return d.configErr
	}
	d.logger.Debug("dispatching", map[string]interface{}{"workflow": string(wf)})

	switch wf {
	case domain.WorkflowInstall:
		return d.workflows.Install(ctx)
	case domain.WorkflowStop:
		return d.workflows.Stop(ctx)
	case domain.WorkflowRestart:
		return d.workflows.Restart(ctx)
	case domain.WorkflowLogs:
		return d.workflows.Logs(ctx)
	case domain.WorkflowStatus:
		return d.workflows.Status(ctx)
	case domain.WorkflowTest:
		return d.workflows.Test(ctx)
	case domain.WorkflowHelp:
		return d.workflows.Help(ctx)
	default:
		return d.workflows.Start(ctx)
	}
}
