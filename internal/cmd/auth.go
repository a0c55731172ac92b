package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventsctl/internal/authz"
	"eventsctl/internal/log"
	"eventsctl/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the events platform.

Credentials are stored in the session file under ~/.eventsctl, readable
only by your user. Logging out removes them again.

Subcommands:
  login     Login with username and password
  logout    Logout and remove the stored session
  register  Register a new user account
  status    Show current authentication status

Examples:
  eventsctl auth login --username alice --password secret
  eventsctl auth status
  eventsctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd handles user login
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the events platform",
	Long: `Login to the events platform with your username and password.

On success the access token is saved locally together with your username,
and your role is looked up from the server.

Examples:
  eventsctl auth login --username alice --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if username == "" {
			return fmt.Errorf("--username is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		token, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		// The stored role starts at the least privileged value; the fresh
		// one comes from the server right after, and protected commands
		// re-resolve it on every run anyway.
		sess := session.Session{
			Token:    token,
			Username: username,
			Role:     authz.DefaultRole,
		}
		if err := getStore().Save(sess); err != nil {
			return err
		}

		resolver := authz.NewResolver(client, log.DefaultLogger())
		res := resolver.Resolve(cmd.Context(), username)
		if err := getStore().Save(sess.WithRole(res.Role)); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (role: %s)\n", username, res.Role)
		return nil
	},
}

// authLogoutCmd handles user logout.
// Logout is client-side: the stored token, username, and role are removed
// together, leaving no half-session behind.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := getStore().Load()
		if !sess.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := getStore().Clear(); err != nil {
			return err
		}

		fmt.Printf("Logged out %s.\n", sess.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)

	authLoginCmd.Flags().String("username", "", "Username (required)")
	authLoginCmd.Flags().String("password", "", "Password (required)")
}
