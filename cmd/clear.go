package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billmaker/internal/logger"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every invoice record from the local history",
	Long: `Irreversibly delete all invoice records from the database. Rendered PDF
files on disk are not touched.

Two gates protect this: the --yes flag must be given explicitly, and if
BILLMAKER_ADMIN_PASSWORD is set the matching --password is required.`,
	Example: `  billmaker clear --yes --password "$BILLMAKER_ADMIN_PASSWORD"`,
	RunE:    runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Bool("yes", false, "Confirm the irreversible deletion")
	clearCmd.Flags().String("password", "", "Admin password, if configured")
}

func runClear(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("clear")

	confirmed, _ := cmd.Flags().GetBool("yes")
	password, _ := cmd.Flags().GetString("password")

	if !confirmed {
		return fmt.Errorf("refusing to clear all invoices without --yes")
	}

	pipeline, err := buildPipeline(password)
	if err != nil {
		return err
	}

	if err := pipeline.ClearAll(context.Background()); err != nil {
		log.Error().
			Err(err).
			Msg("Failed to clear invoice records")
		return err
	}

	fmt.Fprintln(os.Stdout, "All invoice records deleted.")
	return nil
}
