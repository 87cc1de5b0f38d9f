package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/pkg/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging into the platform.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the SoftDrop platform",
		Long:  "Login to the SoftDrop platform using your phone number and password",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your phone number and password.")
			phone := promptForInput("Phone number: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidatePhone(phone); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			manager, _ := newSession()
			manager.Restore()
			// A rejected login already clears any stale session inside the manager.
			if err := manager.Login(cmd.Context(), phone, password); err != nil {
				cmd.PrintErrln("Error:", client.UserMessage(err))
				return
			}
			cmd.Println("Login was successful.")
		},
	}

	return cmd
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}
