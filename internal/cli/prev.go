package cli

import (
	"github.com/spf13/cobra"
)

func newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Switch back to the previously active version",
		Args:  cobra.NoArgs,
		RunE:  runPrev,
	}
}

func runPrev(cmd *cobra.Command, _ []string) error {
	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	v, err := app.mgr.Rollback(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("active: %s %s\n", app.cfg.Binary, v)
	return nil
}
