package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultProbeTimeout bounds a single tool probe (version/info calls).
	DefaultProbeTimeout = 20 * time.Second
	// DefaultBuildTimeout bounds a native or container build.
	DefaultBuildTimeout = 30 * time.Minute
	// DefaultComposeTimeout bounds non-interactive compose calls (up/down/restart/ps).
	DefaultComposeTimeout = 10 * time.Minute
	// ProcessWaitDelay is how long a cancelled child gets to exit after the interrupt.
	ProcessWaitDelay = 5 * time.Second
)

// Journal constants
const (
	// DefaultJournalLimit is the number of journal events shown by status
	DefaultJournalLimit = 5
	// JournalFileName is the SQLite file created under the state directory
	JournalFileName = "journal.db"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
