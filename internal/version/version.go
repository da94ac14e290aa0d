// Package version carries build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/doeshing/stackctl/internal/version.Version=v1.2.0"
package version

// Set at build time.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// String renders the version with whatever metadata is available.
func String() string {
	s := Version
	if Commit != "" {
		s += " (" + Commit
		if BuildDate != "" {
			s += ", " + BuildDate
		}
		s += ")"
	} else if BuildDate != "" {
		s += " (" + BuildDate + ")"
	}
	return s
}
