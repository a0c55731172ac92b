package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eventsctl/internal/api"
	"eventsctl/internal/guard"
)

// referenceCmd lists reference table contents
var referenceCmd = &cobra.Command{
	Use:   "reference <table>",
	Short: "List a reference table",
	Long: `List the contents of a reference table.

Available tables: event_types, scales, locations, teachers,
participant_categories.

Examples:
  eventsctl reference event_types
  eventsctl reference teachers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if !isReferenceTable(table) {
			return fmt.Errorf("unknown reference table %q (one of: %s)",
				table, strings.Join(api.ReferenceTables(), ", "))
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		items, err := client.Reference(cmd.Context(), table)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No entries.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\n", item.ID, item.Name)
		}
		return w.Flush()
	},
}

func isReferenceTable(name string) bool {
	for _, t := range api.ReferenceTables() {
		if t == name {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}
