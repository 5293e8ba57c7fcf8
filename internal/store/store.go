// Package store is the filesystem-backed registry of installed versions.
// Installed versions are directories under the versions root whose names
// are canonical version strings; the previous-version pointer lives in a
// sibling dotfile. The set is always derived fresh from a scan, never
// cached across invocations.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"verso/internal/semver"
)

// Store reads and mutates the on-disk version registry rooted at Dir.
type Store struct {
	// Dir is the versions root containing one directory per installed
	// version plus the previous-version pointer file.
	Dir string
	// PrevFile holds the previously active version as a single line.
	PrevFile string
}

// New returns a store over the given versions root.
func New(dir, prevFile string) Store {
	return Store{Dir: dir, PrevFile: prevFile}
}

// List scans the versions root and returns the installed versions sorted
// ascending. A missing or empty root yields an empty slice; only an
// unreadable root is an error.
func (s Store) List() ([]semver.Version, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan versions root %s: %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return semver.FromNames(names), nil
}

// Installed reports whether the given version has an installation directory.
func (s Store) Installed(v semver.Version) (bool, error) {
	info, err := os.Stat(s.PathFor(v))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat version %s: %w", v, err)
	}
	return info.IsDir(), nil
}

// PathFor returns the deterministic installation directory for a version,
// independent of whether it exists.
func (s Store) PathFor(v semver.Version) string {
	return filepath.Join(s.Dir, v.String())
}

// ReadPrevious returns the recorded previous version, or ok=false when the
// pointer file is absent or empty. The recorded version is not required to
// still be installed; that is the caller's concern.
func (s Store) ReadPrevious() (semver.Version, bool, error) {
	contents, err := os.ReadFile(s.PrevFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return semver.Version{}, false, nil
		}
		return semver.Version{}, false, fmt.Errorf("read previous pointer: %w", err)
	}

	line := strings.TrimSpace(string(contents))
	if line == "" {
		return semver.Version{}, false, nil
	}
	v, err := semver.Parse(line)
	if err != nil {
		return semver.Version{}, false, fmt.Errorf("previous pointer corrupt: %w", err)
	}
	return v, true, nil
}

// WritePrevious replaces the previous-version pointer with value. An empty
// value records "none". The replacement is whole-value: the new contents
// are written to a temp file and renamed over the pointer.
func (s Store) WritePrevious(value string) error {
	if err := os.MkdirAll(filepath.Dir(s.PrevFile), 0o755); err != nil {
		return fmt.Errorf("prepare versions root: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.PrevFile), ".prev-*")
	if err != nil {
		return fmt.Errorf("create temp pointer: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp pointer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp pointer: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.PrevFile); err != nil {
		return fmt.Errorf("replace previous pointer: %w", err)
	}
	return nil
}

// Remove deletes the installation directories for the given versions.
// A version that is not installed is a no-op success. Failures do not
// abort the batch; every removal is attempted and the per-version errors
// are joined.
func (s Store) Remove(versions ...semver.Version) error {
	var errs []error
	for _, v := range versions {
		dir := s.PathFor(v)
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", v, err))
		}
	}
	return errors.Join(errs...)
}
