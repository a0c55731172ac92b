package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eventsctl/internal/api"
	"eventsctl/internal/authz"
	"eventsctl/internal/guard"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer the events database",
	Long: `Administer the events database.

Most admin commands are available to any authenticated account; the user
administration commands require the admin role. The role is re-checked
against the server on every run.

Subcommands:
  stats   Show database counters
  table   Browse and edit a database table
  users   Manage user accounts (admin only)

Examples:
  eventsctl admin stats
  eventsctl admin table teacher
  eventsctl admin users list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// adminStatsCmd shows database counters
var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.Authenticated()); err != nil {
			return err
		}

		stats, err := client.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Tables:                 %d\n", stats.TableCount)
		fmt.Printf("Events:                 %d\n", stats.EventCount)
		fmt.Printf("Teachers:               %d\n", stats.TeacherCount)
		fmt.Printf("Locations:              %d\n", stats.LocationCount)
		fmt.Printf("Event types:            %d\n", stats.EventTypeCount)
		fmt.Printf("Scales:                 %d\n", stats.ScaleCount)
		fmt.Printf("Participant categories: %d\n", stats.ParticipantCategoryCount)
		fmt.Printf("Users:                  %d\n", stats.UserCount)
		return nil
	},
}

// adminTableCmd browses one database table
var adminTableCmd = &cobra.Command{
	Use:   "table <name>",
	Short: "Browse a database table",
	Long: `Browse the rows of a database table.

Available tables: ` + strings.Join(api.AdminTables(), ", ") + `.
The users table requires the admin role.

Use --delete to remove a row by its id; the table is refetched afterwards
so the output reflects server state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		if !isAdminTable(table) {
			return fmt.Errorf("unknown table %q (one of: %s)",
				table, strings.Join(api.AdminTables(), ", "))
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		policy := guard.Authenticated()
		if table == "users" {
			policy = guard.RequireRoles(authz.RoleAdmin)
		}
		if err := requireAccess(cmd, client, policy); err != nil {
			return err
		}

		if deleteID, _ := cmd.Flags().GetInt("delete"); deleteID > 0 {
			if err := client.DeleteTableRecord(cmd.Context(), table, deleteID); err != nil {
				return err
			}
			fmt.Printf("Deleted record %d from %s.\n\n", deleteID, table)
		}

		rows, err := client.TableRows(cmd.Context(), table)
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			fmt.Println("No rows.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return w.Flush()
	},
}

// adminUsersCmd manages user accounts; every subcommand is admin-only
var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// adminUsersListCmd lists user accounts
var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.RequireRoles(authz.RoleAdmin)); err != nil {
			return err
		}

		users, err := client.GetUsers(cmd.Context())
		if err != nil {
			return err
		}

		printUsers(users)
		return nil
	},
}

// adminUsersRoleCmd changes an account's role
var adminUsersRoleCmd = &cobra.Command{
	Use:   "change-role <id> <role>",
	Short: "Change an account's role",
	Long: `Change an account's role.

Valid roles: user, manager, admin. The change takes effect on the target
account's next access check, with no re-login needed.

Examples:
  eventsctl admin users change-role 2 manager`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		role, ok := authz.ParseRole(args[1])
		if !ok {
			return fmt.Errorf("invalid role %q (one of: user, manager, admin)", args[1])
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.RequireRoles(authz.RoleAdmin)); err != nil {
			return err
		}

		if err := client.ChangeRole(cmd.Context(), id, string(role)); err != nil {
			return err
		}

		// Refetch so the confirmation shows server truth.
		users, err := client.GetUsers(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Role of user %d set to %s.\n\n", id, role)
		printUsers(users)
		return nil
	},
}

// adminUsersDeleteCmd removes an account
var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}
		if err := requireAccess(cmd, client, guard.RequireRoles(authz.RoleAdmin)); err != nil {
			return err
		}

		if err := client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}

		users, err := client.GetUsers(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Deleted user %d.\n\n", id)
		printUsers(users)
		return nil
	},
}

func printUsers(users []api.User) {
	if len(users) == 0 {
		fmt.Println("No users.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
	}
	_ = w.Flush()
}

func isAdminTable(name string) bool {
	for _, t := range api.AdminTables() {
		if t == name {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminTableCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminUsersCmd.AddCommand(adminUsersListCmd)
	adminUsersCmd.AddCommand(adminUsersRoleCmd)
	adminUsersCmd.AddCommand(adminUsersDeleteCmd)

	adminTableCmd.Flags().Int("delete", 0, "Delete the row with this id before listing")
}
