// Package testutil holds in-memory fakes of the ports used across package tests.
package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/doeshing/stackctl/internal/domain"
)

// Call is one recorded ProcessRunner invocation.
type Call struct {
	Mode string // "run" or "capture"
	Line string // "name arg1 arg2"
}

// FakeRunner is a scripted ports.ProcessRunner. Commands are matched by their
// full command line; anything not scripted returns Default.
type FakeRunner struct {
	mu      sync.Mutex
	Paths   map[string]bool
	Results map[string]domain.CommandResult
	Default domain.CommandResult
	// OnRun, when set, overrides the scripted result of streamed commands.
	OnRun func(ctx context.Context, line string) domain.CommandResult
	Calls []Call
}

// NewFakeRunner returns a runner where the given binaries are on PATH and every
// unscripted command succeeds.
func NewFakeRunner(onPath ...string) *FakeRunner {
	r := &FakeRunner{Paths: map[string]bool{}, Results: map[string]domain.CommandResult{}}
	for _, p := range onPath {
		r.Paths[p] = true
	}
	return r
}

// Fail scripts line to exit with code.
func (r *FakeRunner) Fail(line string, code int) *FakeRunner {
	r.Results[line] = domain.CommandResult{Code: code, Err: fmt.Errorf("exit status %d", code)}
	return r
}

// Respond scripts line to succeed with output.
func (r *FakeRunner) Respond(line, output string) *FakeRunner {
	r.Results[line] = domain.CommandResult{Output: output}
	return r
}

func (r *FakeRunner) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Paths[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (r *FakeRunner) Run(ctx context.Context, name string, args ...string) domain.CommandResult {
	line := joinLine(name, args)
	r.record("run", line)
	if r.OnRun != nil {
		return r.OnRun(ctx, line)
	}
	return r.lookup(line)
}

func (r *FakeRunner) Capture(ctx context.Context, name string, args ...string) domain.CommandResult {
	line := joinLine(name, args)
	r.record("capture", line)
	return r.lookup(line)
}

// Lines returns the recorded command lines in order.
func (r *FakeRunner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Line)
	}
	return out
}

func (r *FakeRunner) record(mode, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Mode: mode, Line: line})
}

func (r *FakeRunner) lookup(line string) domain.CommandResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.Results[line]; ok {
		return res
	}
	return r.Default
}

func joinLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Reporter records messages as "level: text".
type Reporter struct {
	mu    sync.Mutex
	Lines []string
}

func (r *Reporter) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, level+": "+msg)
}

func (r *Reporter) Header()             { r.add("header", "") }
func (r *Reporter) Banner(title string) { r.add("banner", title) }
func (r *Reporter) Success(msg string)  { r.add("success", msg) }
func (r *Reporter) Error(msg string)    { r.add("error", msg) }
func (r *Reporter) Warning(msg string)  { r.add("warning", msg) }
func (r *Reporter) Info(msg string)     { r.add("info", msg) }
func (r *Reporter) Plain(msg string)    { r.add("plain", msg) }
func (r *Reporter) Blank()              {}

// Contains reports whether any recorded line contains s.
func (r *Reporter) Contains(s string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.Lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{})        {}
func (NopLogger) Info(string, map[string]interface{})         {}
func (NopLogger) Warn(string, map[string]interface{})         {}
func (NopLogger) Error(string, error, map[string]interface{}) {}
