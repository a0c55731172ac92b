package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eventsctl/internal/api"
	"eventsctl/internal/errors"
	"eventsctl/internal/guard"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and search events",
	Long: `Browse and search the events catalog.

All events commands need a login but no particular role.

Subcommands:
  list    List all events
  get     Show one event in full
  search  Search events by title

Examples:
  eventsctl events list
  eventsctl events get 7
  eventsctl events search "Science Fair"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// eventsListCmd lists all events
var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		events, err := client.ListEvents(cmd.Context())
		if err != nil {
			return err
		}

		printEventTable(events)
		return nil
	},
}

// eventsGetCmd shows a single event
var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one event in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		event, err := client.GetEvent(cmd.Context(), id)
		if err != nil {
			return err
		}

		printEventDetail(event)
		return nil
	},
}

// eventsSearchCmd searches events by title.
// An empty result is reported as such, not as a failure.
var eventsSearchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search events by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		events, err := client.SearchEventsByName(cmd.Context(), args[0])
		if err != nil {
			if errors.IsNotFound(err) {
				fmt.Printf("No events match %q.\n", args[0])
				return nil
			}
			return err
		}

		printEventTable(events)
		return nil
	},
}

func printEventTable(events []api.Event) {
	if len(events) == 0 {
		fmt.Println("No events.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTART\tEND\tLOCATION\tSTATUS")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, e.EventType, e.StartDate, e.EndDate, e.Location, e.Status)
	}
	_ = w.Flush()

	fmt.Printf("\n%d events\n", len(events))
}

func printEventDetail(e *api.Event) {
	fmt.Printf("Event #%d: %s\n\n", e.ID, e.Title)
	fmt.Printf("Description: %s\n", e.Description)
	fmt.Printf("Type:        %s\n", e.EventType)
	fmt.Printf("Scale:       %s\n", e.Scale)
	fmt.Printf("Dates:       %s to %s\n", e.StartDate, e.EndDate)
	fmt.Printf("Location:    %s\n", e.Location)
	fmt.Printf("Status:      %s\n", e.Status)
	fmt.Printf("Teacher:     %s\n", e.ResponsibleTeacher)
	fmt.Printf("Budget:      %.2f\n", e.EstimatedBudget)
	fmt.Printf("Category:    %s\n", e.ParticipantCategory)
	if e.Notes != "" {
		fmt.Printf("Notes:       %s\n", e.Notes)
	}
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsSearchCmd)
}
