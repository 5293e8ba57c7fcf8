package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"verso/internal/semver"
)

// Install makes the requested version available and active. The version
// token may carry a leading "v". When the version's directory already
// exists it is treated as installed: no package-manager call, just
// activation. A package-manager failure removes the partially created
// directory so no half-installed state survives.
func (m *Manager) Install(ctx context.Context, rawSpec string) (semver.Version, error) {
	v, err := semver.Parse(semver.Normalize(rawSpec))
	if err != nil {
		return semver.Version{}, err
	}

	installed, err := m.Store.Installed(v)
	if err != nil {
		return semver.Version{}, err
	}
	if installed {
		m.logf("install %s: already installed", v)
		return v, m.Activate(ctx, v)
	}

	unlock, err := m.acquireInstallLock(ctx)
	if err != nil {
		return semver.Version{}, err
	}
	defer unlock()

	// Another process may have finished the same install while we waited.
	installed, err = m.Store.Installed(v)
	if err != nil {
		return semver.Version{}, err
	}
	if installed {
		return v, m.Activate(ctx, v)
	}

	dir := m.Store.PathFor(v)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return semver.Version{}, fmt.Errorf("create install directory: %w", err)
	}

	m.logf("installing %s@%s into %s", m.Package, v, dir)
	if err := m.Runner.Install(ctx, m.Package, v.String(), dir); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			m.logf("cleanup of %s failed: %v", dir, rmErr)
		}
		return semver.Version{}, fmt.Errorf("version %s: %w: %v", v, ErrInstallFailed, err)
	}

	if err := m.Activate(ctx, v); err != nil {
		return semver.Version{}, err
	}
	return v, nil
}

// acquireInstallLock serializes installs across processes with an
// exclusive lock file under the versions root.
func (m *Manager) acquireInstallLock(ctx context.Context) (func(), error) {
	if err := m.Paths.EnsureVersionsDir(); err != nil {
		return nil, err
	}

	lockPath := filepath.Join(m.Store.Dir, ".lock")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire install lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire install lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
