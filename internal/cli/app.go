package cli

import (
	"io"

	"verso/internal/config"
	"verso/internal/logx"
	"verso/internal/manager"
	"verso/internal/npm"
	"verso/internal/paths"
	"verso/internal/registry"
	"verso/internal/store"
)

// app bundles the wired components for one command invocation. State is
// re-derived from the filesystem on every run; nothing is carried over
// between invocations.
type app struct {
	cfg      config.Config
	paths    paths.Paths
	store    store.Store
	mgr      *manager.Manager
	reg      registry.Client
	logClose io.Closer
}

// newApp resolves configuration and wires the components. When withLog is
// set, a session log file is opened under the managed root and the
// package-manager output is captured there.
func newApp(withLog bool) (*app, error) {
	p, err := paths.Resolve(rootDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFile)
	if err != nil {
		return nil, err
	}
	p = p.WithBinDir(cfg.BinDir)

	st := store.New(p.VersionsDir, p.PrevFile)

	a := &app{
		cfg:   cfg,
		paths: p,
		store: st,
		reg:   registry.Client{BaseURL: cfg.Registry, Package: cfg.Package},
	}

	runner := npm.CLI{Executable: cfg.Npm}
	a.mgr = &manager.Manager{
		Store:   st,
		Paths:   p,
		Package: cfg.Package,
		Binary:  cfg.Binary,
	}

	if withLog {
		logger, closer, err := logx.New(p)
		if err != nil {
			return nil, err
		}
		a.logClose = closer
		a.mgr.Log = logger
		runner.Output = logger.Writer()
	}
	a.mgr.Runner = runner

	return a, nil
}

// Close releases the session log, if one was opened.
func (a *app) Close() {
	if a.logClose != nil {
		_ = a.logClose.Close()
	}
}
