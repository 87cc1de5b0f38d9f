package cmd

import (
	"github.com/craigmindset/softdrop-cli/auth"
	"github.com/spf13/cobra"
)

// logoutCmd clears the stored session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			manager, _ := newSession()
			manager.Restore()
			manager.Logout()
			cmd.Println("Logged out.")
		},
	}
}

// whoamiCmd prints the stored login identity and session state.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Run: func(cmd *cobra.Command, args []string) {
			manager, _ := newSession()
			if manager.Restore() != auth.StateLoggedIn {
				cmd.Println("Not logged in.")
				return
			}
			cmd.Println("Logged in as:", manager.Phone())
		},
	}
}
