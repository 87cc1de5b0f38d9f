package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/craigmindset/softdrop-cli/pkg/validation"
)

// transactionsCmd shows one page of platform transactions.
func transactionsCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List platform transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(cmd, page, limit)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to fetch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of transactions per page")

	return cmd
}

func listTransactions(cmd *cobra.Command, page, limit int) {
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

	log.Info().Int("page", page).Msg("Fetching transactions...")
	transactions, err := api.ListTransactions(cmd.Context(), page, limit)
	if err != nil {
		reportRequestError(cmd, manager, err)
		return
	}
	if len(transactions) == 0 {
		cmd.Println("No transactions found for this page.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Reference", "User ID", "Amount", "Status", "Date"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, tx := range transactions {
		table.Append([]string{
			tx.ID,
			tx.Reference,
			tx.UserID,
			fmt.Sprintf("%.2f", tx.Amount),
			tx.Status,
			tx.CreatedAt,
		})
	}
	table.Render()
}
