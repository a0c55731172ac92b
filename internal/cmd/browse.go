package cmd

import (
	"github.com/spf13/cobra"

	"eventsctl/internal/tui"
)

// browseCmd launches the interactive terminal UI
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the events platform interactively",
	Long: `Browse the events platform in an interactive terminal UI.

The UI opens on the login screen unless a session is already stored.
From the event list, / searches, a opens the admin dashboard, and u opens
user administration (admin role required).

Examples:
  eventsctl browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		store := getStore()
		return tui.Run(client, store, getGuard(client))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
