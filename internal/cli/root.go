package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verso/internal/selector"
)

var (
	rootDir    string
	outputJSON bool
	showLatest bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verso [version|latest]",
		Short: "Version manager for an npm-distributed CLI",
		Long: `verso installs multiple versions of a managed CLI side by side and
switches the active one through a symlink in the bin directory.

With no arguments it opens an interactive picker over the installed
versions. With a version argument it installs (if needed) and activates
that version.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "Managed root directory (default $VERSO_DIR or ~/.verso)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.Flags().BoolVar(&showLatest, "latest", false, "Print the latest published version and exit")

	cmd.AddCommand(newUseCmd())
	cmd.AddCommand(newBinCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newPrevCmd())
	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if showLatest {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		latest, err := app.reg.Latest(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println(latest)
		return nil
	}

	if len(args) == 0 {
		return runPicker(cmd)
	}

	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	spec := args[0]
	if spec == "latest" {
		latest, err := app.reg.Latest(cmd.Context())
		if err != nil {
			return err
		}
		spec = latest.String()
	}

	v, err := app.mgr.Install(cmd.Context(), spec)
	if err != nil {
		return err
	}
	cmd.Printf("active: %s %s\n", app.cfg.Binary, v)
	return nil
}

func runPicker(cmd *cobra.Command) error {
	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	installed, err := app.store.List()
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		return errors.New("no versions installed")
	}

	active, hasActive := app.mgr.Active(cmd.Context())
	chosen, ok, err := selector.Run(installed, active, hasActive)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := app.mgr.Activate(cmd.Context(), chosen); err != nil {
		return err
	}
	cmd.Printf("active: %s %s\n", app.cfg.Binary, chosen)
	return nil
}
