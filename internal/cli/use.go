package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"verso/internal/semver"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <version> [args...]",
		Short: "Activate a version and run it with the given arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runUse,
	}
	// Everything after the version token belongs to the invoked tool.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runUse(cmd *cobra.Command, args []string) error {
	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	v, err := semver.Parse(semver.Normalize(args[0]))
	if err != nil {
		return err
	}
	if err := app.mgr.Activate(cmd.Context(), v); err != nil {
		return err
	}

	entry, err := app.mgr.EntryPoint(v)
	if err != nil {
		return err
	}

	tool := exec.CommandContext(cmd.Context(), entry, args[1:]...)
	tool.Stdin = os.Stdin
	tool.Stdout = os.Stdout
	tool.Stderr = os.Stderr
	if err := tool.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Propagate the invoked tool's exit code untouched.
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("run %s: %w", entry, err)
	}
	return nil
}
