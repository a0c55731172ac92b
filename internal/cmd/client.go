package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"eventsctl/internal/api"
	"eventsctl/internal/authz"
	"eventsctl/internal/config"
	"eventsctl/internal/errors"
	"eventsctl/internal/guard"
	"eventsctl/internal/log"
	"eventsctl/internal/session"
)

// getStore returns the session store rooted at the config directory
func getStore() session.Store {
	return session.NewFileStore(config.Home())
}

// getClient builds an API client from the configuration, the --api-url
// flag, and the persisted session token.
func getClient(cmd *cobra.Command) (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, "could not read configuration", err)
	}

	if url, ferr := cmd.Flags().GetString("api-url"); ferr == nil && url != "" {
		cfg.APIURL = url
	}

	client := api.NewClient(cfg.APIURL)
	client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if sess := getStore().Load(); sess.Authenticated() {
		client.SetToken(sess.Token)
	}

	return client, nil
}

// getGuard builds a route guard over the shared store and client
func getGuard(client *api.Client) *guard.Guard {
	resolver := authz.NewResolver(client, log.DefaultLogger())
	return guard.New(getStore(), resolver, log.DefaultLogger())
}

// requireAccess evaluates the policy before a protected command runs.
// The denial reasons mirror the interactive client: no session means log in,
// a present session with an insufficient role means forbidden.
func requireAccess(cmd *cobra.Command, client *api.Client, policy guard.AccessPolicy) error {
	g := getGuard(client)

	d := g.Evaluate(cmd.Context(), policy)
	switch d.State {
	case guard.StateAuthorized:
		return nil
	case guard.StateUnauthenticated:
		return errors.NewNotLoggedInError()
	default:
		required := "a privileged role"
		if len(policy.RequiredRoles) > 0 {
			required = string(policy.RequiredRoles[0])
		}
		return errors.NewForbiddenError(required)
	}
}
