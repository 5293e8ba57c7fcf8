package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verso/internal/npm"
)

// doctorReport summarizes the health of the managed installation.
type doctorReport struct {
	Root          string `json:"root"`
	Package       string `json:"package"`
	Binary        string `json:"binary"`
	NpmOK         bool   `json:"npm_ok"`
	NpmError      string `json:"npm_error,omitempty"`
	RootWritable  bool   `json:"root_writable"`
	Installed     int    `json:"installed"`
	ActiveVersion string `json:"active_version,omitempty"`
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the managed root, the package manager and the active link",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	report := doctorReport{
		Root:    app.paths.Root,
		Package: app.cfg.Package,
		Binary:  app.cfg.Binary,
	}

	runner := npm.CLI{Executable: app.cfg.Npm}
	if err := runner.Check(); err != nil {
		report.NpmError = err.Error()
	} else {
		report.NpmOK = true
	}

	report.RootWritable = rootWritable(app.paths.Root)

	installed, err := app.store.List()
	if err != nil {
		return err
	}
	report.Installed = len(installed)

	if active, ok := app.mgr.Active(cmd.Context()); ok {
		report.ActiveVersion = active.String()
	}

	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("root:      %s (writable: %v)\n", report.Root, report.RootWritable)
	cmd.Printf("package:   %s (binary: %s)\n", report.Package, report.Binary)
	if report.NpmOK {
		cmd.Printf("npm:       ok\n")
	} else {
		cmd.Printf("npm:       %s\n", report.NpmError)
	}
	cmd.Printf("installed: %d\n", report.Installed)
	if report.ActiveVersion != "" {
		cmd.Printf("active:    %s\n", report.ActiveVersion)
	} else {
		cmd.Printf("active:    none\n")
	}
	return nil
}

// rootWritable probes write access by creating and removing a scratch file.
func rootWritable(root string) bool {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(root, ".doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
