package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventsctl/internal/authz"
	"eventsctl/internal/log"
)

// minPasswordLen is the client-side minimum for new account passwords
const minPasswordLen = 6

// authRegisterCmd registers a new user account
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account with the events platform.

New accounts start with the regular user role. Ask an administrator to
raise it if you need access to privileged screens.

Examples:
  eventsctl auth register --username alice --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if username == "" {
			return fmt.Errorf("--username is required")
		}
		if len(password) < minPasswordLen {
			return fmt.Errorf("password must be at least %d characters", minPasswordLen)
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		if err := client.Register(cmd.Context(), username, password); err != nil {
			return err
		}

		fmt.Printf("Account %q created.\n", username)
		fmt.Println("Use 'eventsctl auth login' to log in.")
		return nil
	},
}

// authStatusCmd shows the current session and the server-side role
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := getStore().Load()
		if !sess.Authenticated() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'eventsctl auth login' to authenticate.")
			return nil
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		// The stored role is only a cache; what the server says now is
		// what counts.
		resolver := authz.NewResolver(client, log.DefaultLogger())
		res := resolver.Resolve(cmd.Context(), sess.Username)

		fmt.Println("Logged in")
		fmt.Printf("Username: %s\n", sess.Username)
		fmt.Printf("Role:     %s\n", res.Role)
		return nil
	},
}

func init() {
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authStatusCmd)

	authRegisterCmd.Flags().String("username", "", "Username (required)")
	authRegisterCmd.Flags().String("password", "", "Password (required)")
}
