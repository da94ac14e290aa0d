package bootstrap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"text/template"

	"github.com/doeshing/stackctl/assets"
	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// Bootstrapper implements ports.Bootstrapper. Relative paths resolve against root.
type Bootstrapper struct {
	root     string
	secrets  ports.SecretGenerator
	defaults domain.EnvironmentDefaults
	logger   ports.Logger
	tmpl     *template.Template
	platform string
}

// NewBootstrapper builds a bootstrapper rooted at root (usually the working directory).
func NewBootstrapper(root string, secrets ports.SecretGenerator, defaults domain.EnvironmentDefaults, logger ports.Logger) *Bootstrapper {
	return &Bootstrapper{
		root:     root,
		secrets:  secrets,
		defaults: defaults,
		logger:   logger,
		tmpl:     template.Must(template.New("env").Option("missingkey=error").Parse(assets.EnvTemplate)),
		platform: domain.PlatformName(runtime.GOOS),
	}
}

// EnsureDirectories creates every path and its parents. Existing directories are fine.
func (b *Bootstrapper) EnsureDirectories(paths []string) error {
	for _, p := range paths {
		full := b.resolve(p)
		if err := os.MkdirAll(full, domain.DirectoryPermissions); err != nil {
			return domain.NewError(domain.KindFilesystemFailed, "create directory "+p, err)
		}
		b.logger.Debug("directory ensured", map[string]interface{}{"path": full})
	}
	return nil
}

// EnsureConfig writes the environment file once. An existing file is never
// touched, so secrets are not rotated on re-runs.
func (b *Bootstrapper) EnsureConfig(path string) (domain.ConfigState, error) {
	full := b.resolve(path)
	if _, err := os.Lstat(full); err == nil {
		return domain.ConfigAlreadyPresent, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return domain.ConfigAlreadyPresent, domain.NewError(domain.KindFilesystemFailed, "inspect "+path, err)
	}

	env, err := b.generate()
	if err != nil {
		return domain.ConfigAlreadyPresent, err
	}
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, env); err != nil {
		return domain.ConfigAlreadyPresent, fmt.Errorf("render %s: %w", path, err)
	}
	if err := writeAtomic(full, buf.Bytes()); err != nil {
		return domain.ConfigAlreadyPresent, domain.NewError(domain.KindFilesystemFailed, "write "+path, err)
	}
	b.logger.Info("environment file created", map[string]interface{}{"path": full})
	return domain.ConfigCreated, nil
}

func (b *Bootstrapper) generate() (domain.EnvironmentConfig, error) {
	env := domain.EnvironmentConfig{
		DatabaseUsername: b.defaults.DatabaseUsername,
		DatabaseName:     b.defaults.DatabaseName,
		BrokerUsername:   b.defaults.BrokerUsername,
		ServerURL:        b.defaults.ServerURL,
		WebsocketPath:    b.defaults.WebsocketPath,
		Platform:         b.platform,
	}
	fields := []struct {
		dst    *string
		length int
	}{
		{&env.DatabasePassword, domain.DatabasePasswordLength},
		{&env.SigningSecret, domain.SigningSecretLength},
		{&env.ObjectStoreAccessKey, domain.ObjectStoreAccessKeyLength},
		{&env.ObjectStoreSecretKey, domain.ObjectStoreSecretKeyLength},
		{&env.BrokerPassword, domain.BrokerPasswordLength},
	}
	for _, f := range fields {
		v, err := b.secrets.Generate(f.length)
		if err != nil {
			return domain.EnvironmentConfig{}, fmt.Errorf("generate secret: %w", err)
		}
		*f.dst = v
	}
	return env, nil
}

func (b *Bootstrapper) resolve(p string) string {
	if filepath.IsAbs(p) || b.root == "" {
		return p
	}
	return filepath.Join(b.root, p)
}

// writeAtomic writes data to a temp file next to path and renames it into place.
// os.CreateTemp opens the file with mode 0600.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ ports.Bootstrapper = (*Bootstrapper)(nil)
