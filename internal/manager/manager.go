// Package manager implements the version lifecycle: installing a version
// through the package manager, activating one installed version via the
// bin-directory symlink, and rolling back to the previously active one.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"verso/internal/npm"
	"verso/internal/paths"
	"verso/internal/semver"
	"verso/internal/store"
)

var (
	// ErrNotInstalled marks operations that reference a version without an
	// installation directory or entry point.
	ErrNotInstalled = errors.New("version not installed")
	// ErrNoPrevious marks a rollback with no recorded previous activation.
	ErrNoPrevious = errors.New("no previous activation recorded")
	// ErrInstallFailed marks a package-manager failure during install.
	ErrInstallFailed = errors.New("install failed")
)

// VersionProbe asks an entry-point executable to report its own version
// string. The production probe invokes it with --version.
type VersionProbe func(ctx context.Context, entry string) (string, error)

// Manager wires the store, the package manager and the activation paths
// for one managed tool.
type Manager struct {
	Store   store.Store
	Paths   paths.Paths
	Package string
	Binary  string
	Runner  npm.Runner
	// Probe overrides the --version invocation, mainly for tests.
	Probe VersionProbe
	// Log receives operational trace lines when set.
	Log *log.Logger
}

func (m *Manager) logf(format string, args ...any) {
	if m.Log != nil {
		m.Log.Printf(format, args...)
	}
}

// EntryPoint resolves the executable for an installed version by probing
// the conventional bin path first and the legacy node_modules/.bin layout
// as a fallback. The result is recomputed on every call; different
// installed versions may use different internal layouts.
func (m *Manager) EntryPoint(v semver.Version) (string, error) {
	dir := m.Store.PathFor(v)
	candidates := []string{
		filepath.Join(dir, "bin", m.Binary),
		filepath.Join(dir, "node_modules", ".bin", m.Binary),
	}
	for _, candidate := range candidates {
		ok, err := paths.FileExists(candidate)
		if err != nil {
			return "", fmt.Errorf("probe entry point for %s: %w", v, err)
		}
		if ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", v, ErrNotInstalled)
}

var versionTripleRegex = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

// probeVersion invokes the entry point with --version and extracts the
// semantic version from the first output line.
func probeVersion(ctx context.Context, entry string) (string, error) {
	cmd := exec.CommandContext(ctx, entry, "--version")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", entry, err)
	}
	return firstLine(strings.TrimSpace(string(output))), nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

func (m *Manager) probe(ctx context.Context, entry string) (semver.Version, error) {
	probe := m.Probe
	if probe == nil {
		probe = probeVersion
	}
	line, err := probe(ctx, entry)
	if err != nil {
		return semver.Version{}, err
	}
	match := versionTripleRegex.FindString(line)
	if match == "" {
		return semver.Version{}, fmt.Errorf("no version in output %q", line)
	}
	return semver.Parse(match)
}
