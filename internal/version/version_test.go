package version

import "testing"

func TestString(t *testing.T) {
	orig := [3]string{Version, Commit, BuildDate}
	t.Cleanup(func() { Version, Commit, BuildDate = orig[0], orig[1], orig[2] })

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"dev", "", "", "dev"},
		{"v1.0.0", "abc123", "", "v1.0.0 (abc123)"},
		{"v1.0.0", "abc123", "2026-10-01", "v1.0.0 (abc123, 2026-10-01)"},
		{"v1.0.0", "", "2026-10-01", "v1.0.0 (2026-10-01)"},
	}
	for _, tt := range tests {
		Version, Commit, BuildDate = tt.version, tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
