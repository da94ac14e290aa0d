package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default tool settings.
//
//go:embed defaults/stackctl.yaml
var DefaultConfigYAML []byte

// EnvTemplate renders the environment file written on first run.
//
//go:embed defaults/env.tmpl
var EnvTemplate string
