package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// failureTailLines is how much captured build output is shown on failure.
const failureTailLines = 20

// Invoker implements ports.BuildInvoker.
type Invoker struct {
	runner    ports.ProcessRunner
	reporter  ports.Reporter
	logger    ports.Logger
	indicator ports.Indicator
	engine    domain.EngineSettings
	settings  domain.BuildSettings
}

// NewInvoker builds an invoker. indicator may be nil.
func NewInvoker(runner ports.ProcessRunner, reporter ports.Reporter, logger ports.Logger, indicator ports.Indicator, cfg domain.Config) *Invoker {
	return &Invoker{
		runner:    runner,
		reporter:  reporter,
		logger:    logger,
		indicator: indicator,
		engine:    cfg.Engine,
		settings:  cfg.Build,
	}
}

// Build runs the native build when hasNativeTool is set, the container build
// otherwise. A failed native build does not fall back to the container build.
func (i *Invoker) Build(ctx context.Context, hasNativeTool bool) error {
	i.reporter.Info("Building application...")

	name, args := i.settings.NativeTool, i.settings.NativeArgs
	label := "Build"
	if !hasNativeTool {
		i.reporter.Info(fmt.Sprintf("Building with %s...", i.engineName()))
		buildDir := i.settings.Context
		if buildDir == "" {
			buildDir = "."
		}
		name, args = i.engine.Binary, []string{"build", "-t", i.settings.Image, buildDir}
		label = i.engineName() + " build"
	}

	cctx, cancel := context.WithTimeout(ctx, domain.DefaultBuildTimeout)
	defer cancel()
	i.startIndicator()
	res := i.runner.Capture(cctx, name, args...)
	i.stopIndicator()

	if ctx.Err() != nil {
		return domain.ErrCancelled
	}
	if !res.Succeeded() {
		i.logger.Error("build failed", res.Err, map[string]interface{}{"command": name, "code": res.Code})
		i.reporter.Error(label + " failed!")
		for _, line := range tail(res.Output, failureTailLines) {
			i.reporter.Plain(line)
		}
		return domain.NewError(domain.KindCommandFailed, "build", fmt.Errorf("%s exited with code %d", name, res.Code))
	}
	i.reporter.Success(label + " successful")
	return nil
}

// Test runs the native test goal, streaming its output.
func (i *Invoker) Test(ctx context.Context) error {
	i.reporter.Info("Running tests...")
	if _, err := i.runner.LookPath(i.settings.NativeTool); err != nil {
		i.reporter.Error(fmt.Sprintf("%s not found. Cannot run tests.", i.settings.NativeTool))
		return domain.NewError(domain.KindToolMissing, "test", err)
	}
	res := i.runner.Run(ctx, i.settings.NativeTool, i.settings.TestArgs...)
	if ctx.Err() != nil {
		return domain.ErrCancelled
	}
	if !res.Succeeded() {
		i.reporter.Warning("Some tests failed")
		return domain.NewError(domain.KindCommandFailed, "test", fmt.Errorf("%s exited with code %d", i.settings.NativeTool, res.Code))
	}
	i.reporter.Success("Tests completed")
	return nil
}

func (i *Invoker) engineName() string {
	if i.engine.Name != "" {
		return i.engine.Name
	}
	return i.engine.Binary
}

func (i *Invoker) startIndicator() {
	if i.indicator != nil {
		i.indicator.Start()
	}
}

func (i *Invoker) stopIndicator() {
	if i.indicator != nil {
		i.indicator.Stop()
	}
}

func tail(output string, n int) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

var _ ports.BuildInvoker = (*Invoker)(nil)
