package manager

import (
	"context"
	"errors"
	"fmt"
	"os"

	"verso/internal/semver"
)

// Active determines the currently active version by resolving the
// activation symlink and asking the linked entry point to report its own
// version. A missing or dangling link, or an entry that cannot report a
// parseable version, counts as "none active". The result is never cached;
// every caller pays for a fresh probe.
func (m *Manager) Active(ctx context.Context) (semver.Version, bool) {
	link := m.Paths.Link(m.Binary)
	target, err := os.Readlink(link)
	if err != nil {
		return semver.Version{}, false
	}

	v, err := m.probe(ctx, target)
	if err != nil {
		m.logf("active probe via %s failed: %v", target, err)
		return semver.Version{}, false
	}
	return v, true
}

// Activate makes v the system default. Activating the already-active
// version is a no-op: no pointer update, no relink. Otherwise the current
// active version (possibly none) is recorded as the previous pointer and
// the activation symlink is swapped to v's entry point.
func (m *Manager) Activate(ctx context.Context, v semver.Version) error {
	entry, err := m.EntryPoint(v)
	if err != nil {
		return err
	}

	current, ok := m.Active(ctx)
	if ok && current == v {
		m.logf("activate %s: already active", v)
		return nil
	}

	prev := ""
	if ok {
		prev = current.String()
	}
	if err := m.Store.WritePrevious(prev); err != nil {
		return err
	}

	if err := os.MkdirAll(m.Paths.BinDir, 0o755); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}
	if err := swapLink(entry, m.Paths.Link(m.Binary)); err != nil {
		return err
	}
	m.logf("activated %s -> %s", v, entry)
	return nil
}

// swapLink replaces the activation symlink atomically: the new link is
// created at a temporary name and renamed over the final path, so there
// is no window with no link at all.
func swapLink(target, link string) error {
	tmp := link + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear stale temp link: %w", err)
	}
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("create activation link: %w", err)
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit activation link: %w", err)
	}
	return nil
}

// Rollback re-activates the previously active version. It fails when no
// previous activation was ever recorded, or when the recorded version has
// since been removed.
func (m *Manager) Rollback(ctx context.Context) (semver.Version, error) {
	prev, ok, err := m.Store.ReadPrevious()
	if err != nil {
		return semver.Version{}, err
	}
	if !ok {
		return semver.Version{}, ErrNoPrevious
	}

	installed, err := m.Store.Installed(prev)
	if err != nil {
		return semver.Version{}, err
	}
	if !installed {
		return semver.Version{}, fmt.Errorf("previous version %s: %w", prev, ErrNotInstalled)
	}

	if err := m.Activate(ctx, prev); err != nil {
		return semver.Version{}, err
	}
	return prev, nil
}
