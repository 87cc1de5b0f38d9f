package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// dashboardCmd shows the aggregate platform figures.
func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the admin dashboard statistics",
		Run:   showDashboard,
	}
}

func showDashboard(cmd *cobra.Command, args []string) {
	manager, api, ok := requireSession(cmd)
	if !ok {
		return
	}

	log.Info().Msg("Fetching dashboard statistics...")
	stats, err := api.DashboardStats(cmd.Context())
	if err != nil {
		reportRequestError(cmd, manager, err)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	table.Append([]string{"Senders", fmt.Sprintf("%d", stats.TotalSenders)})
	table.Append([]string{"Carriers", fmt.Sprintf("%d", stats.TotalCarriers)})
	table.Append([]string{"Deliveries", fmt.Sprintf("%d", stats.TotalDeliveries)})
	table.Append([]string{"Pending deliveries", fmt.Sprintf("%d", stats.PendingDeliveries)})
	table.Append([]string{"Transactions", fmt.Sprintf("%d", stats.TotalTransactions)})
	table.Append([]string{"Revenue", fmt.Sprintf("%.2f", stats.TotalRevenue)})
	table.Render()
}
