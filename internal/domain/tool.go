package domain

import "strings"

// ToolAvailability is the result of probing one external executable.
// It is computed fresh on every invocation and never persisted.
type ToolAvailability struct {
	Name        string
	Present     bool
	Runnable    bool
	VersionInfo string
	Guidance    []string
}

// Usable reports whether the tool is both installed and healthy.
func (t ToolAvailability) Usable() bool {
	return t.Present && t.Runnable
}

// ComposeCommand is one invocation form of the compose tool, e.g.
// "docker compose" (plugin) or "docker-compose" (legacy binary).
type ComposeCommand struct {
	Program  string
	BaseArgs []string
}

// Args prepends the base arguments of the invocation form to args.
func (c ComposeCommand) Args(args ...string) []string {
	out := make([]string, 0, len(c.BaseArgs)+len(args))
	out = append(out, c.BaseArgs...)
	return append(out, args...)
}

// String renders the invocation form the way a user would type it.
func (c ComposeCommand) String() string {
	return strings.Join(append([]string{c.Program}, c.BaseArgs...), " ")
}

// IsZero reports whether no compose variant was detected.
func (c ComposeCommand) IsZero() bool {
	return c.Program == ""
}
