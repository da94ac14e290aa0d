package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/doeshing/stackctl/internal/application/dispatch"
	"github.com/doeshing/stackctl/internal/application/workflow"
	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/infrastructure/bootstrap"
	"github.com/doeshing/stackctl/internal/infrastructure/build"
	"github.com/doeshing/stackctl/internal/infrastructure/compose"
	"github.com/doeshing/stackctl/internal/infrastructure/config"
	"github.com/doeshing/stackctl/internal/infrastructure/detect"
	"github.com/doeshing/stackctl/internal/infrastructure/execx"
	"github.com/doeshing/stackctl/internal/infrastructure/journal"
	"github.com/doeshing/stackctl/internal/infrastructure/secret"
	"github.com/doeshing/stackctl/internal/pkg/logger"
	"github.com/doeshing/stackctl/internal/ports"
)

// Options configures BuildContainer. Reporter is required; the rest default
// to the process environment.
type Options struct {
	Verbose   bool
	Root      string
	Binary    string
	Reporter  ports.Reporter
	Indicator ports.Indicator
	Runner    ports.ProcessRunner
	Logger    ports.Logger
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigErr      error
	ConfigLoader   *config.FileLoader
	Workflows      *workflow.Service
	Dispatcher     *dispatch.Dispatcher
	Journal        ports.Journal
	Logger         ports.Logger
	ProcessRunner  ports.ProcessRunner
	ServiceFactory ports.ControllerFactory
}

// BuildContainer constructs the dependency graph. Nothing here spawns a
// process or writes to disk.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = wd
	}
	binary := opts.Binary
	if binary == "" {
		binary = "stackctl"
	}

	cfgLoader := config.NewFileLoader(root, "")
	cfg, cfgErr := cfgLoader.Load(ctx)
	if cfgErr != nil {
		// Help still runs on the embedded defaults; dispatch rejects the rest.
		defaults, err := config.DefaultConfig()
		if err != nil {
			return nil, err
		}
		cfg = defaults
	}

	var log ports.Logger = opts.Logger
	if log == nil {
		log = logger.New(opts.Verbose)
	}
	runner := opts.Runner
	if runner == nil {
		r := execx.NewRunner(opts.Verbose)
		r.Dir = root
		runner = r
	}

	stateDir := cfg.StateDir
	if !filepath.IsAbs(stateDir) {
		stateDir = filepath.Join(root, stateDir)
	}
	journalStore := journal.NewSQLiteStore(filepath.Join(stateDir, domain.JournalFileName), log)

	factory := compose.Factory(runner, compose.Options{
		Reporter:  opts.Reporter,
		Logger:    log,
		Indicator: opts.Indicator,
		Config:    cfg,
		Program:   binary,
	})

	workflows := &workflow.Service{
		Config:       cfg,
		Root:         root,
		Binary:       binary,
		RunID:        uuid.NewString(),
		Detector:     detect.NewDetector(runner, opts.Reporter, log, cfg),
		Bootstrapper: bootstrap.NewBootstrapper(root, secret.NewGenerator(), cfg.Environment, log),
		Builder:      build.NewInvoker(runner, opts.Reporter, log, opts.Indicator, cfg),
		Controllers:  factory,
		Journal:      journalStore,
		Reporter:     opts.Reporter,
		Logger:       log,
	}

	return &Container{
		Config:         cfg,
		ConfigErr:      cfgErr,
		ConfigLoader:   cfgLoader,
		Workflows:      workflows,
		Dispatcher:     dispatch.New(workflows, opts.Reporter, log, binary).WithConfigError(cfgErr),
		Journal:        journalStore,
		Logger:         log,
		ProcessRunner:  runner,
		ServiceFactory: factory,
	}, nil
}

// Close releases the journal.
func (c *Container) Close() error {
	if c.Journal == nil {
		return nil
	}
	return c.Journal.Close()
}
