package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventsctl/internal/api"
	"eventsctl/internal/guard"
)

// eventsCreateCmd adds a new event.
// Reference fields take ids; use 'eventsctl reference <table>' to look them
// up. The list is refetched after the mutation so the output shows server
// truth.
var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event",
	Long: `Create a new event.

Type, scale, location, teacher, and category take ids from the matching
reference tables; list them with 'eventsctl reference <table>' first.
Valid statuses: ` + strings.Join(api.EventStatuses(), ", ") + `.

Examples:
  eventsctl events create --title "Science Fair" \
    --type 1 --scale 2 --location 3 --teacher 4 --category 1 \
    --start 2026-03-01 --end 2026-03-02 --status planned`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		status, _ := cmd.Flags().GetString("status")

		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("--title is required")
		}
		if start == "" || end == "" {
			return fmt.Errorf("--start and --end are required (YYYY-MM-DD)")
		}
		// ISO dates compare correctly as strings.
		if end < start {
			return fmt.Errorf("--end must not be before --start")
		}
		if !isEventStatus(status) {
			return fmt.Errorf("invalid status %q (one of: %s)",
				status, strings.Join(api.EventStatuses(), ", "))
		}

		req := api.CreateEventRequest{
			Title:     strings.TrimSpace(title),
			StartDate: start,
			EndDate:   end,
			Status:    status,
		}
		req.EventTypeID, _ = cmd.Flags().GetInt("type")
		req.ScaleID, _ = cmd.Flags().GetInt("scale")
		req.LocationID, _ = cmd.Flags().GetInt("location")
		req.ResponsibleTeacherID, _ = cmd.Flags().GetInt("teacher")
		req.ParticipantCategoryID, _ = cmd.Flags().GetInt("category")

		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			req.Description = &desc
		}
		if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
			req.Notes = &notes
		}
		if budget, _ := cmd.Flags().GetInt("budget"); budget > 0 {
			req.EstimatedBudget = &budget
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		if err := client.CreateEvent(cmd.Context(), req); err != nil {
			return err
		}

		// Refetch so the confirmation shows server truth.
		events, err := client.ListEvents(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Created event %q.\n\n", req.Title)
		printEventTable(events)
		return nil
	},
}

func isEventStatus(s string) bool {
	for _, status := range api.EventStatuses() {
		if status == s {
			return true
		}
	}
	return false
}

func init() {
	eventsCmd.AddCommand(eventsCreateCmd)

	eventsCreateCmd.Flags().String("title", "", "Event title (required)")
	eventsCreateCmd.Flags().String("description", "", "Event description")
	eventsCreateCmd.Flags().Int("type", 0, "Event type id (see 'reference event_types')")
	eventsCreateCmd.Flags().Int("scale", 0, "Scale id (see 'reference scales')")
	eventsCreateCmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	eventsCreateCmd.Flags().String("end", "", "End date, YYYY-MM-DD (required)")
	eventsCreateCmd.Flags().Int("location", 0, "Location id (see 'reference locations')")
	eventsCreateCmd.Flags().String("status", "planned", "Status: "+strings.Join(api.EventStatuses(), ", "))
	eventsCreateCmd.Flags().Int("teacher", 0, "Responsible teacher id (see 'reference teachers')")
	eventsCreateCmd.Flags().Int("budget", 0, "Estimated budget")
	eventsCreateCmd.Flags().Int("category", 0, "Participant category id (see 'reference participant_categories')")
	eventsCreateCmd.Flags().String("notes", "", "Free-form notes")
}
