package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/db"
	"github.com/craigmindset/softdrop-cli/pkg/pool"
	"github.com/craigmindset/softdrop-cli/pkg/validation"
)

// usersCmd groups the user management subcommands.
func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform users (senders and carriers)",
	}

	cmd.AddCommand(
		listUsersCmd(),
		getUserCmd(),
		searchUsersCmd(),
		refreshUsersCmd(),
	)

	return cmd
}

// listUsersCmd shows one page of users from the API, or the local cache.
func listUsersCmd() *cobra.Command {
	var role string
	var page, limit int
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List platform users",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers(cmd, role, page, limit, cached)
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Filter by role [SENDER, CARRIER]")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to fetch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of users per page")
	cmd.Flags().BoolVarP(&cached, "cached", "c", false, "Read from the local cache instead of the API")

	return cmd
}

func listUsers(cmd *cobra.Command, role string, page, limit int, cached bool) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if err := validation.ValidateRole(role); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	if cached {
		users, err := db.GetCachedUsers(role)
		if err != nil {
			cmd.PrintErrln("Error: Unable to read the local cache. Please check the logs for details.")
			log.Error().Err(err).Msg("Failed to read cached users.")
			return
		}
		if len(users) == 0 {
			cmd.Println("No users in the local cache. Use `softdrop users refresh` to fill it.")
			return
		}
		renderCachedUsers(users)
		return
	}

	if err := validation.ValidatePage(page); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateLimit(limit); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	manager, api, ok := requireSession(cmd)
	if !ok {
		return
	}

	users, err := api.ListUsers(cmd.Context(), role, page, limit)
	if err != nil {
		reportRequestError(cmd, manager, err)
		return
	}
	if len(users) == 0 {
		cmd.Println("No users found for this page.")
		return
	}
	renderUsers(users)
}

// getUserCmd shows a single user fetched by ID.
func getUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single user by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			manager, api, ok := requireSession(cmd)
			if !ok {
				return
			}

			user, err := api.GetUser(cmd.Context(), args[0])
			if err != nil {
				reportRequestError(cmd, manager, err)
				return
			}

			cmd.Println("User Information:")
			cmd.Printf("ID: %s\n", user.ID)
			cmd.Printf("Name: %s %s\n", user.FirstName, user.LastName)
			cmd.Printf("Phone: %s\n", user.Phone)
			cmd.Printf("Role: %s\n", user.Role)
			cmd.Printf("Status: %s\n", user.Status)
			cmd.Printf("Joined: %s\n", user.CreatedAt)
		},
	}
}

// searchUsersCmd searches the local cache by name or phone.
func searchUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search cached users by name or phone",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			users, err := db.SearchCachedUsers(args[0])
			if err != nil {
				cmd.PrintErrln("Error: Unable to search the local cache. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search cached users.")
				return
			}
			if len(users) == 0 {
				cmd.Println("No cached users match. Use `softdrop users refresh` to update the cache.")
				return
			}
			renderCachedUsers(users)
		},
	}
}

// refreshUsersCmd pulls every page of users into the local cache.
func refreshUsersCmd() *cobra.Command {
	var numThreads, pageSize int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the local cache with the latest users from the platform",
		Run: func(cmd *cobra.Command, args []string) {
			refreshUsers(cmd, numThreads, pageSize)
		},
	}

	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of threads to use for fetching user pages")
	cmd.Flags().IntVarP(&pageSize, "limit", "l", 50, "Number of users per fetched page")

	return cmd
}

func refreshUsers(cmd *cobra.Command, numThreads, pageSize int) {
	log.Info().Msg("Refreshing the local user cache...")

	if numThreads < 1 || numThreads > 20 {
		cmd.PrintErrln("Error: Number of threads should be between 1 and 20.")
		return
	}
	if err := validation.ValidateLimit(pageSize); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	manager, api, ok := requireSession(cmd)
	if !ok {
		return
	}

	// The dashboard totals tell us how many pages exist up front, so the
	// pages can be fetched concurrently instead of walking them one by one.
	stats, err := api.DashboardStats(cmd.Context())
	if err != nil {
		reportRequestError(cmd, manager, err)
		return
	}

	totalUsers := stats.TotalSenders + stats.TotalCarriers
	if totalUsers == 0 {
		cmd.Println("No users found on the platform.")
		return
	}

	pageCount := (totalUsers + pageSize - 1) / pageSize
	pages := make([]int, pageCount)
	for i := range pages {
		pages[i] = i + 1
	}

	bar := progressbar.NewOptions(pageCount,
		progressbar.OptionSetDescription("Fetching user pages..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	results, errs := pool.Map(cmd.Context(), pages, numThreads,
		func(ctx context.Context, page int) ([]client.User, error) {
			users, err := api.ListUsers(ctx, "", page, pageSize)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
			}
			_ = bar.Add(1)
			return users, nil
		})
	if len(errs) > 0 {
		reportRequestError(cmd, manager, errs[0])
		return
	}

	if err := db.EmptyUserCache(); err != nil {
		cmd.PrintErrln("Error: Unable to clear the local cache. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to empty the user cache.")
		return
	}

	cachedCount := 0
	for _, pageUsers := range results {
		for _, user := range pageUsers {
			record := db.CachedUser{
				ID:        user.ID,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Phone:     user.Phone,
				Role:      user.Role,
				Status:    user.Status,
				CreatedAt: user.CreatedAt,
			}
			if err := db.PutCachedUser(record); err != nil {
				log.Error().Err(err).Msgf("Failed to cache user with ID %s", user.ID)
				continue
			}
			cachedCount++
		}
	}

	cmd.Printf("Cached %d users.\n", cachedCount)
}

func renderUsers(users []client.User) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Phone", "Role", "Status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, user := range users {
		table.Append([]string{
			user.ID,
			strings.TrimSpace(user.FirstName + " " + user.LastName),
			user.Phone,
			user.Role,
			user.Status,
		})
	}
	table.Render()
}

func renderCachedUsers(users []db.CachedUser) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Phone", "Role", "Status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, user := range users {
		table.Append([]string{
			user.ID,
			strings.TrimSpace(user.FirstName + " " + user.LastName),
			user.Phone,
			user.Role,
			user.Status,
		})
	}
	table.Render()
}
