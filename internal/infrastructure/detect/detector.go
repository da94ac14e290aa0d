package detect

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// Candidate is one compose invocation form plus the probe that proves it works.
type Candidate struct {
	Command domain.ComposeCommand
	Probe   func(ctx context.Context, runner ports.ProcessRunner) bool
}

// Detector implements ports.ToolDetector.
type Detector struct {
	runner     ports.ProcessRunner
	reporter   ports.Reporter
	logger     ports.Logger
	engine     domain.EngineSettings
	build      domain.BuildSettings
	candidates []Candidate
	goos       string
	// timeout bounds each candidate separately.
	timeout time.Duration
}

// NewDetector builds a detector for the configured engine and build tool.
// Compose variants are tried in the order returned by DefaultCandidates.
func NewDetector(runner ports.ProcessRunner, reporter ports.Reporter, logger ports.Logger, cfg domain.Config) *Detector {
	return &Detector{
		runner:     runner,
		reporter:   reporter,
		logger:     logger,
		engine:     cfg.Engine,
		build:      cfg.Build,
		candidates: DefaultCandidates(cfg.Engine.Binary),
		goos:       runtime.GOOS,
		timeout:    domain.DefaultProbeTimeout,
	}
}

// DefaultCandidates prefers the engine's compose plugin and falls back to the
// standalone legacy binary.
func DefaultCandidates(engine string) []Candidate {
	plugin := domain.ComposeCommand{Program: engine, BaseArgs: []string{"compose"}}
	legacy := domain.ComposeCommand{Program: engine + "-compose"}
	return []Candidate{
		{
			Command: plugin,
			Probe: func(ctx context.Context, runner ports.ProcessRunner) bool {
				return runner.Capture(ctx, plugin.Program, plugin.Args("version")...).Succeeded()
			},
		},
		{
			Command: legacy,
			Probe: func(ctx context.Context, runner ports.ProcessRunner) bool {
				if _, err := runner.LookPath(legacy.Program); err != nil {
					return false
				}
				return runner.Capture(ctx, legacy.Program, "version").Succeeded()
			},
		},
	}
}

// WithCandidates replaces the compose strategy list.
func (d *Detector) WithCandidates(candidates []Candidate) *Detector {
	d.candidates = candidates
	return d
}

// DetectEngine checks that the engine binary exists and its daemon answers.
func (d *Detector) DetectEngine(ctx context.Context) domain.ToolAvailability {
	name := d.engineName()
	d.reporter.Info(fmt.Sprintf("Checking %s...", name))
	avail := domain.ToolAvailability{Name: d.engine.Binary}

	if _, err := d.runner.LookPath(d.engine.Binary); err != nil {
		d.logger.Debug("engine not on PATH", map[string]interface{}{"binary": d.engine.Binary, "error": err.Error()})
		avail.Guidance = []string{fmt.Sprintf("Please install %s:", name), "  " + d.installURL()}
		d.reporter.Error(fmt.Sprintf("%s is not installed!", name))
		d.report(avail.Guidance)
		return avail
	}
	avail.Present = true

	cctx, cancel := context.WithTimeout(ctx, domain.DefaultProbeTimeout)
	defer cancel()
	res := d.runner.Capture(cctx, d.engine.Binary, "info")
	if !res.Succeeded() {
		d.logger.Debug("engine health probe failed", map[string]interface{}{"code": res.Code})
		avail.Guidance = []string{fmt.Sprintf("Please start %s", name)}
		d.reporter.Error(fmt.Sprintf("%s is not running!", name))
		d.report(avail.Guidance)
		return avail
	}
	avail.Runnable = true
	d.reporter.Success(fmt.Sprintf("%s is running", name))
	return avail
}

// DetectComposeVariant returns the first candidate whose probe succeeds.
func (d *Detector) DetectComposeVariant(ctx context.Context) (domain.ComposeCommand, bool) {
	for _, c := range d.candidates {
		if d.tryCandidate(ctx, c) {
			d.logger.Debug("compose variant detected", map[string]interface{}{"command": c.Command.String()})
			return c.Command, true
		}
		d.logger.Debug("compose variant unavailable", map[string]interface{}{"command": c.Command.String()})
	}
	return domain.ComposeCommand{}, false
}

func (d *Detector) tryCandidate(ctx context.Context, c Candidate) bool {
	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return c.Probe(cctx, d.runner)
}

// DetectBuildTool reports the native build tool as usable only when both its
// runtime answers a version probe and the tool itself is on PATH.
func (d *Detector) DetectBuildTool(ctx context.Context) domain.ToolAvailability {
	avail := domain.ToolAvailability{Name: d.build.NativeTool}
	if d.build.NativeTool == "" {
		return avail
	}
	runtimeName := d.build.Runtime
	if runtimeName != "" {
		d.reporter.Info(fmt.Sprintf("Checking %s...", runtimeName))
		if _, err := d.runner.LookPath(runtimeName); err == nil {
			cctx, cancel := context.WithTimeout(ctx, domain.DefaultProbeTimeout)
			res := d.runner.Capture(cctx, runtimeName, "-version")
			cancel()
			if res.Succeeded() {
				avail.Runnable = true
				avail.VersionInfo = firstLine(res.Output)
			}
		}
	} else {
		avail.Runnable = true
	}
	if _, err := d.runner.LookPath(d.build.NativeTool); err == nil {
		avail.Present = true
	}

	if avail.Usable() {
		if avail.VersionInfo != "" {
			d.reporter.Success(fmt.Sprintf("%s found: %s", runtimeName, avail.VersionInfo))
		} else {
			d.reporter.Success(fmt.Sprintf("%s found", d.build.NativeTool))
		}
		return avail
	}
	d.reporter.Warning(fmt.Sprintf("%s not found. Will use %s for building.", d.missingBuildPart(avail), d.engineName()))
	return avail
}

func (d *Detector) missingBuildPart(avail domain.ToolAvailability) string {
	if !avail.Runnable && d.build.Runtime != "" {
		return d.build.Runtime
	}
	return d.build.NativeTool
}

func (d *Detector) engineName() string {
	if d.engine.Name != "" {
		return d.engine.Name
	}
	return d.engine.Binary
}

func (d *Detector) installURL() string {
	if url, ok := d.engine.InstallURLs[d.goos]; ok {
		return url
	}
	return d.engine.InstallURLs["linux"]
}

func (d *Detector) report(lines []string) {
	for i, line := range lines {
		if i == 0 {
			d.reporter.Info(line)
			continue
		}
		d.reporter.Plain(line)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

var _ ports.ToolDetector = (*Detector)(nil)
