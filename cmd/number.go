package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billmaker/internal/logger"
)

var numberCmd = &cobra.Command{
	Use:   "number",
	Short: "Preview the next invoice number",
	Long: `Print the identifier the next invoice would receive today, in the form
DDMMYYYY-NNNN. Nothing is reserved: the number is only committed when an
invoice is actually created, so two previews on the same day print the
same value.`,
	Example: `  billmaker number`,
	RunE:    runNumber,
}

func init() {
	rootCmd.AddCommand(numberCmd)
}

func runNumber(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("number")

	pipeline, err := buildPipeline("")
	if err != nil {
		return err
	}

	next, err := pipeline.NextIdentifier(context.Background())
	if err != nil {
		log.Error().
			Err(err).
			Msg("Failed to compute next invoice number")
		return err
	}

	fmt.Fprintln(os.Stdout, next)
	return nil
}
