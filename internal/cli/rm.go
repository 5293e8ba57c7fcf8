package cli

import (
	"github.com/spf13/cobra"

	"verso/internal/semver"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <version>...",
		Short: "Remove installed versions",
		Long: `Remove the installation directories of the given versions.

Versions that are not installed are skipped without error. A failure to
remove one version does not abort the removal of the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRm,
	}
}

func runRm(cmd *cobra.Command, args []string) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	versions := make([]semver.Version, 0, len(args))
	for _, arg := range args {
		v, err := semver.Parse(semver.Normalize(arg))
		if err != nil {
			return err
		}
		versions = append(versions, v)
	}

	if err := app.store.Remove(versions...); err != nil {
		return err
	}
	for _, v := range versions {
		cmd.Printf("removed %s\n", v)
	}
	return nil
}
