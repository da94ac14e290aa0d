package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
	"github.com/doeshing/stackctl/internal/version"
)

// Service runs the top-level stack workflows.
type Service struct {
	Config       domain.Config
	Root         string
	Binary       string
	RunID        string
	Detector     ports.ToolDetector
	Bootstrapper ports.Bootstrapper
	Builder      ports.BuildInvoker
	Controllers  ports.ControllerFactory
	Journal      ports.Journal
	Reporter     ports.Reporter
	Logger       ports.Logger
}

// Install checks the prerequisites, bootstraps the working directory and
// builds the application.
func (s *Service) Install(ctx context.Context) error {
	s.Reporter.Header()
	_, err := s.install(ctx)
	return err
}

// Start brings the stack up. A working directory without an environment file
// is installed first.
func (s *Service) Start(ctx context.Context) error {
	s.Reporter.Header()

	var (
		compose domain.ComposeCommand
		err     error
	)
	if s.configured() {
		if compose, err = s.prerequisites(ctx); err != nil {
			return err
		}
	} else {
		s.Reporter.Info(fmt.Sprintf("%s file not found! Running installation first...", s.Config.EnvFile))
		s.Reporter.Blank()
		if compose, err = s.install(ctx); err != nil {
			return err
		}
		s.Reporter.Blank()
	}

	err = s.Controllers(compose).Start(ctx)
	s.record(ctx, domain.WorkflowStart, "up", err, compose.String())
	return err
}

// Stop tears the stack down.
func (s *Service) Stop(ctx context.Context) error {
	return s.lifecycle(ctx, domain.WorkflowStop, "down", ports.ServiceController.Stop)
}

// Restart restarts the stack's services.
func (s *Service) Restart(ctx context.Context) error {
	return s.lifecycle(ctx, domain.WorkflowRestart, "restart", ports.ServiceController.Restart)
}

// Logs follows the stack's logs until interrupted.
func (s *Service) Logs(ctx context.Context) error {
	compose, ok := s.compose(ctx)
	if !ok {
		return s.composeMissing(domain.WorkflowLogs)
	}
	return s.Controllers(compose).Logs(ctx)
}

// Status lists the stack's containers followed by the latest journal entries.
func (s *Service) Status(ctx context.Context) error {
	compose, ok := s.compose(ctx)
	if !ok {
		return s.composeMissing(domain.WorkflowStatus)
	}
	if err := s.Controllers(compose).Status(ctx); err != nil {
		return err
	}
	s.printRecent(ctx)
	return nil
}

// Test runs the application's test suite with the native build tool.
func (s *Service) Test(ctx context.Context) error {
	err := s.Builder.Test(ctx)
	s.record(ctx, domain.WorkflowTest, "test", err, "")
	return err
}

// Help prints the command overview.
func (s *Service) Help(context.Context) error {
	s.Reporter.Header()
	s.Reporter.Plain(fmt.Sprintf("Usage: %s [command]", s.binary()))
	s.Reporter.Blank()
	s.Reporter.Plain("Commands:")
	for _, c := range Commands {
		s.Reporter.Plain(fmt.Sprintf("  %-13s - %s", c.Name, c.Description))
	}
	s.Reporter.Blank()
	s.Reporter.Plain("Platform: " + domain.PlatformName(runtime.GOOS))
	s.Reporter.Plain("Version: " + version.String())
	return nil
}

// Command describes one entry of the help listing.
type Command struct {
	Name        string
	Description string
}

// Commands is the help listing in display order.
var Commands = []Command{
	{"(no command)", "Install and start services"},
	{"install", "Install and build application"},
	{"start", "Start all services"},
	{"stop", "Stop all services"},
	{"restart", "Restart all services"},
	{"logs", "View logs in real-time"},
	{"status", "Check service status"},
	{"test", "Run tests"},
}

func (s *Service) install(ctx context.Context) (domain.ComposeCommand, error) {
	engine := s.Detector.DetectEngine(ctx)
	if !engine.Usable() {
		err := engineError(engine)
		s.record(ctx, domain.WorkflowInstall, "engine", err, engine.Name)
		return domain.ComposeCommand{}, err
	}
	buildTool := s.Detector.DetectBuildTool(ctx)

	compose, ok := s.compose(ctx)
	if !ok {
		return domain.ComposeCommand{}, s.composeMissing(domain.WorkflowInstall)
	}
	s.Reporter.Success(fmt.Sprintf("%s Compose found: %s", s.engineName(), compose))

	s.Reporter.Info("Creating directories...")
	if err := s.Bootstrapper.EnsureDirectories(s.Config.Directories); err != nil {
		s.Reporter.Error(fmt.Sprintf("Failed to create directories: %v", err))
		s.record(ctx, domain.WorkflowInstall, "directories", err, "")
		return domain.ComposeCommand{}, err
	}
	s.Reporter.Success("Directories created")

	if !s.configured() {
		s.Reporter.Info(fmt.Sprintf("Generating %s file with secure passwords...", s.Config.EnvFile))
	}
	state, err := s.Bootstrapper.EnsureConfig(s.Config.EnvFile)
	if err != nil {
		s.Reporter.Error(fmt.Sprintf("Failed to write %s: %v", s.Config.EnvFile, err))
		s.record(ctx, domain.WorkflowInstall, "config", err, "")
		return domain.ComposeCommand{}, err
	}
	if state == domain.ConfigCreated {
		s.Reporter.Success(s.Config.EnvFile + " file created")
	} else {
		s.Reporter.Success(s.Config.EnvFile + " file already exists")
	}
	s.record(ctx, domain.WorkflowInstall, "config", nil, state.String())

	err = s.Builder.Build(ctx, buildTool.Usable())
	s.record(ctx, domain.WorkflowInstall, "build", err, buildMode(buildTool))
	if err != nil {
		return domain.ComposeCommand{}, err
	}

	s.Reporter.Blank()
	s.Reporter.Success("Installation complete!")
	return compose, nil
}

// prerequisites verifies the engine and resolves the compose variant.
func (s *Service) prerequisites(ctx context.Context) (domain.ComposeCommand, error) {
	engine := s.Detector.DetectEngine(ctx)
	if !engine.Usable() {
		err := engineError(engine)
		s.record(ctx, domain.WorkflowStart, "engine", err, engine.Name)
		return domain.ComposeCommand{}, err
	}
	compose, ok := s.compose(ctx)
	if !ok {
		return domain.ComposeCommand{}, s.composeMissing(domain.WorkflowStart)
	}
	return compose, nil
}

func (s *Service) lifecycle(ctx context.Context, wf domain.Workflow, step string, op func(ports.ServiceController, context.Context) error) error {
	compose, ok := s.compose(ctx)
	if !ok {
		return s.composeMissing(wf)
	}
	err := op(s.Controllers(compose), ctx)
	s.record(ctx, wf, step, err, compose.String())
	return err
}

func (s *Service) compose(ctx context.Context) (domain.ComposeCommand, bool) {
	return s.Detector.DetectComposeVariant(ctx)
}

func (s *Service) composeMissing(wf domain.Workflow) error {
	s.Reporter.Error(fmt.Sprintf("%s Compose not found!", s.engineName()))
	s.Logger.Warn("no compose variant available", map[string]interface{}{"workflow": string(wf)})
	return domain.NewError(domain.KindToolMissing, string(wf), errors.New("compose command not found"))
}

// configured reports whether the environment file exists.
func (s *Service) configured() bool {
	path := s.Config.EnvFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}
	_, err := os.Lstat(path)
	return err == nil
}

func (s *Service) printRecent(ctx context.Context) {
	if s.Journal == nil {
		return
	}
	events, err := s.Journal.Recent(ctx, domain.DefaultJournalLimit)
	if err != nil {
		s.Logger.Debug("journal read failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if len(events) == 0 {
		return
	}
	s.Reporter.Blank()
	s.Reporter.Plain("Recent activity:")
	for _, ev := range events {
		line := fmt.Sprintf("   - %s %s: %s", ev.Workflow, ev.Step, ev.Outcome)
		if ev.Detail != "" {
			line += " [" + ev.Detail + "]"
		}
		s.Reporter.Plain(line + " (" + humanize.Time(ev.At) + ")")
	}
}

func (s *Service) record(ctx context.Context, wf domain.Workflow, step string, err error, detail string) {
	if s.Journal == nil {
		return
	}
	outcome := domain.OutcomeOK
	switch {
	case errors.Is(err, domain.ErrCancelled):
		outcome = domain.OutcomeSkipped
		detail = "cancelled"
	case err != nil:
		outcome = domain.OutcomeFailed
		if kind := domain.KindOf(err); kind != "" {
			detail = string(kind)
		}
	}
	s.Journal.Record(ctx, domain.JournalEvent{
		RunID:    s.RunID,
		Workflow: wf,
		Step:     step,
		Outcome:  outcome,
		Detail:   detail,
	})
}

func (s *Service) engineName() string {
	if s.Config.Engine.Name != "" {
		return s.Config.Engine.Name
	}
	return s.Config.Engine.Binary
}

func (s *Service) binary() string {
	if s.Binary != "" {
		return s.Binary
	}
	return "stackctl"
}

func engineError(engine domain.ToolAvailability) error {
	if !engine.Present {
		return domain.NewError(domain.KindToolMissing, "engine", fmt.Errorf("%s not found on PATH", engine.Name))
	}
	return domain.NewError(domain.KindToolUnhealthy, "engine", fmt.Errorf("%s is not running", engine.Name))
}

func buildMode(tool domain.ToolAvailability) string {
	if tool.Usable() {
		return "native"
	}
	return "container"
}
