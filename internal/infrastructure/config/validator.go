package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/stackctl/internal/domain"
)

// Validate ensures the settings can drive the bootstrap.
func Validate(cfg domain.Config) error {
	if strings.TrimSpace(cfg.EnvFile) == "" {
		return errors.New("env_file must be set")
	}
	if strings.TrimSpace(cfg.Engine.Binary) == "" {
		return errors.New("engine.binary must be set")
	}
	if strings.TrimSpace(cfg.Build.Image) == "" {
		return errors.New("build.image must be set")
	}
	if strings.TrimSpace(cfg.Build.NativeTool) == "" && len(cfg.Build.NativeArgs) > 0 {
		return errors.New("build.native_args set without build.native_tool")
	}
	for _, dir := range cfg.Directories {
		if strings.TrimSpace(dir) == "" {
			return errors.New("directories must not contain empty entries")
		}
		if filepath.IsAbs(dir) {
			return fmt.Errorf("directory %s must be relative to the working directory", dir)
		}
	}
	for _, e := range cfg.Endpoints {
		if e.Name == "" || e.URL == "" {
			return fmt.Errorf("endpoint %q needs both name and url", e.Name)
		}
	}
	return nil
}
