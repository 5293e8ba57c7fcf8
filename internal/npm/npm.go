// Package npm shells out to the npm CLI, the external collaborator that
// actually downloads and unpacks a version's files.
package npm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrMissing indicates the configured package-manager executable is not
// available on PATH.
var ErrMissing = errors.New("package manager not found")

// Runner installs one package version into a directory. It either succeeds
// or fails as a whole; partial results are the caller's problem to clean up.
type Runner interface {
	Install(ctx context.Context, pkg, version, dir string) error
}

// CLI is the production Runner backed by the npm executable.
type CLI struct {
	// Executable is the npm binary to invoke, e.g. "npm".
	Executable string
	// Output receives the combined stdout/stderr of npm invocations.
	// Nil discards it.
	Output io.Writer
}

// Check verifies the npm executable resolves on PATH.
func (c CLI) Check() error {
	if _, err := exec.LookPath(c.Executable); err != nil {
		return fmt.Errorf("%w: %s", ErrMissing, c.Executable)
	}
	return nil
}

// Install runs `npm install --global --prefix <dir> <pkg>@<version>`.
// The call blocks until npm exits; no timeout is enforced here beyond
// what the context carries.
func (c CLI) Install(ctx context.Context, pkg, version, dir string) error {
	if err := c.Check(); err != nil {
		return err
	}

	spec := pkg
	if version != "" {
		spec = pkg + "@" + version
	}
	cmd := exec.CommandContext(ctx, c.Executable,
		"install", "--global", "--prefix", dir, spec)
	if c.Output != nil {
		cmd.Stdout = c.Output
		cmd.Stderr = c.Output
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install %s: %w", c.Executable, spec, err)
	}
	return nil
}

// InstallFunc adapts a function to the Runner interface, mirroring
// http.HandlerFunc. Tests use it to fake the package manager.
type InstallFunc func(ctx context.Context, pkg, version, dir string) error

func (f InstallFunc) Install(ctx context.Context, pkg, version, dir string) error {
	return f(ctx, pkg, version, dir)
}
