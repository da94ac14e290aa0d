package domain

// CommandResult is the outcome of one subprocess invocation. It is consumed
// by the caller right away and never retained.
type CommandResult struct {
	Code   int
	Err    error
	Output string
}

// Succeeded reports a zero exit with no spawn error.
func (r CommandResult) Succeeded() bool {
	return r.Code == 0 && r.Err == nil
}

// Workflow names a dispatchable top-level operation.
type Workflow string

const (
	WorkflowInstall Workflow = "install"
	WorkflowStart   Workflow = "start"
	WorkflowStop    Workflow = "stop"
	WorkflowRestart Workflow = "restart"
	WorkflowLogs    Workflow = "logs"
	WorkflowStatus  Workflow = "status"
	WorkflowTest    Workflow = "test"
	WorkflowHelp    Workflow = "help"
)

// StackState is the conceptual lifecycle position of the stack.
type StackState string

const (
	StateUninitialized StackState = "uninitialized"
	StateConfigured    StackState = "configured"
	StateBuilt         StackState = "built"
	StateRunning       StackState = "running"
)
