package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/craigmindset/softdrop-cli/auth"
	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/db"
	"github.com/craigmindset/softdrop-cli/pkg/clierr"
)

// defaultServerURL is the production API endpoint.
// The SOFTDROP_SERVER_URL environment variable overrides it.
const defaultServerURL = "https://api.softdrop.app"

func serverURL() string {
	if u := os.Getenv("SOFTDROP_SERVER_URL"); u != "" {
		return u
	}
	return defaultServerURL
}

// newSession builds the session manager and the API client against the
// global database connection.
func newSession() (*auth.Manager, *client.Client) {
	repo := db.NewSessionRepository(db.Db)
	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: serverURL()})
	api := client.New(serverURL(), manager)
	return manager, api
}

// requireSession restores the stored session and reports whether a usable
// one exists. Commands that talk to the API call this first.
func requireSession(cmd *cobra.Command) (*auth.Manager, *client.Client, bool) {
	manager, api := newSession()
	if manager.Restore() != auth.StateLoggedIn {
		cmd.PrintErrln("Error: You are not logged in. Run 'softdrop login' first.")
		return nil, nil, false
	}
	return manager, api, true
}

// classifyRequestError maps an API call failure to a structured CLI error.
func classifyRequestError(err error) *clierr.Error {
	switch {
	case errors.Is(err, client.ErrSessionExpired) || client.IsUnauthorized(err):
		return clierr.New(clierr.Unauthorized, "Your session has expired. Please login again.", err)
	default:
		var transportErr *client.TransportError
		if errors.As(err, &transportErr) {
			return clierr.New(clierr.Network, client.UserMessage(err), err)
		}
		return clierr.New(clierr.Internal, client.UserMessage(err), err)
	}
}

// reportRequestError applies the shared error policy: a 401 or an expired
// session forces logout; every other error surfaces an inline message.
func reportRequestError(cmd *cobra.Command, manager *auth.Manager, err error) {
	cerr := classifyRequestError(err)
	if cerr.Type == clierr.Unauthorized {
		manager.Logout()
	}
	cmd.PrintErrln("Error:", cerr.Message)
}
