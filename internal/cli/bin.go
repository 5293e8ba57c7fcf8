package cli

import (
	"github.com/spf13/cobra"

	"verso/internal/semver"
)

func newBinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bin <version>",
		Short: "Print the entry-point path of an installed version",
		Args:  cobra.ExactArgs(1),
		RunE:  runBin,
	}
}

func runBin(cmd *cobra.Command, args []string) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	v, err := semver.Parse(semver.Normalize(args[0]))
	if err != nil {
		return err
	}

	entry, err := app.mgr.EntryPoint(v)
	if err != nil {
		return err
	}
	cmd.Println(entry)
	return nil
}
