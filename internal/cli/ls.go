package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all published versions of the managed package",
		Args:  cobra.NoArgs,
		RunE:  runLs,
	}
}

func runLs(cmd *cobra.Command, _ []string) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	published, err := app.reg.Versions(cmd.Context())
	if err != nil {
		return err
	}

	if outputJSON {
		names := make([]string, len(published))
		for i, v := range published {
			names[i] = v.String()
		}
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	installed, err := app.store.List()
	if err != nil {
		return err
	}
	installedSet := make(map[string]bool, len(installed))
	for _, v := range installed {
		installedSet[v.String()] = true
	}

	for _, v := range published {
		marker := " "
		if installedSet[v.String()] {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, v)
	}
	return nil
}
