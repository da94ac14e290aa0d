package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/stackctl/assets"
	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// FileName is the optional settings file looked up in the working directory.
const FileName = "stackctl.yaml"

// FileLoader loads YAML settings from ./stackctl.yaml (overridable via STACKCTL_CONFIG).
// A missing file is not an error: the embedded defaults apply.
type FileLoader struct {
	root         string
	overridePath string
}

// NewFileLoader builds a new loader rooted at root. path, when set, wins over
// both STACKCTL_CONFIG and the default location.
func NewFileLoader(root, path string) *FileLoader {
	return &FileLoader{root: root, overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg = hydrateDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the resolved settings file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("STACKCTL_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(l.root, FileName)
}

// DefaultConfig decodes the embedded defaults.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Build.Context == "" {
		cfg.Build.Context = "."
	}
	if cfg.Engine.Name == "" {
		cfg.Engine.Name = cfg.Engine.Binary
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
