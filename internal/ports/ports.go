// Package ports defines the interfaces between the workflow layer and the
// adapters that touch processes, the filesystem and persistent state.
//
// Workflows depend only on these interfaces so every step of the bootstrap can
// be exercised in tests without a container engine or build toolchain on PATH.
package ports

import (
	"context"
	"io"

	"github.com/doeshing/stackctl/internal/domain"
)

// ConfigProvider loads the tool settings (stackctl.yaml merged over defaults).
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProcessRunner spawns external commands.
type ProcessRunner interface {
	// LookPath reports whether name resolves to an executable on PATH.
	LookPath(name string) (string, error)
	// Run streams the child's stdio to the terminal and blocks until it exits.
	Run(ctx context.Context, name string, args ...string) domain.CommandResult
	// Capture runs quietly and returns combined stdout/stderr in Output.
	Capture(ctx context.Context, name string, args ...string) domain.CommandResult
}

// ToolDetector probes the prerequisites. It never fails the caller; absence is
// reported through the returned values.
type ToolDetector interface {
	DetectEngine(ctx context.Context) domain.ToolAvailability
	DetectComposeVariant(ctx context.Context) (domain.ComposeCommand, bool)
	DetectBuildTool(ctx context.Context) domain.ToolAvailability
}

// SecretGenerator produces random alphanumeric credentials.
type SecretGenerator interface {
	Generate(length int) (string, error)
}

// Bootstrapper performs the one-time directory and environment file setup.
type Bootstrapper interface {
	EnsureDirectories(paths []string) error
	EnsureConfig(path string) (domain.ConfigState, error)
}

// BuildInvoker builds the application artifact.
type BuildInvoker interface {
	Build(ctx context.Context, hasNativeTool bool) error
	Test(ctx context.Context) error
}

// ServiceController drives the stack through the detected compose variant.
type ServiceController interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Status(ctx context.Context) error
	Logs(ctx context.Context) error
}

// ControllerFactory binds a ServiceController to a detected compose variant.
type ControllerFactory func(domain.ComposeCommand) ServiceController

// Journal records lifecycle events. Implementations are best-effort.
type Journal interface {
	Record(ctx context.Context, event domain.JournalEvent)
	Recent(ctx context.Context, limit int) ([]domain.JournalEvent, error)
	io.Closer
}

// Reporter renders user-facing progress messages.
type Reporter interface {
	Header()
	Banner(title string)
	Success(msg string)
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Plain(msg string)
	Blank()
}

// Indicator shows that a quiet, long-running step is in progress.
type Indicator interface {
	Start()
	Stop()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
