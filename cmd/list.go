package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billmaker/internal/logger"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent invoices from the local history",
	Long: `List the most recently created invoices, newest first. Ordering is by
creation date, with same-day invoices in reverse insertion order.`,
	Example: `  # Last 10 invoices (default)
  billmaker list

  # Last 25 invoices
  billmaker list -n 25`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntP("limit", "n", 10, "Maximum number of invoices to show")
}

func runList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("list")

	limit, _ := cmd.Flags().GetInt("limit")

	pipeline, err := buildPipeline("")
	if err != nil {
		return err
	}

	records, err := pipeline.ListRecent(context.Background(), limit)
	if err != nil {
		log.Error().
			Err(err).
			Int("limit", limit).
			Msg("Failed to list invoices")
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No invoices recorded yet.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%s  %-12s  client=%q  signed_by=%q  pdf=%s\n",
			r.DateCreated, r.InvoiceNumber, r.ClientName, r.SignedBy, r.PDFPath)
	}

	log.Info().
		Int("count", len(records)).
		Int("limit", limit).
		Msg("Listed recent invoices")
	return nil
}
