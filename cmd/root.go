package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billmaker/internal/auth"
	"billmaker/internal/config"
	"billmaker/internal/invoice"
	"billmaker/internal/logger"
	"billmaker/internal/pdf"
	"billmaker/internal/store"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billmaker",
	Short: "Billmaker CLI - generate PDF invoices and keep a local history",
	Long: `Billmaker is a small-business invoicing tool. It collects client and
service details, renders a PDF invoice from the company template, and
records a summary row in a local SQLite database for history and
auditing.

Invoice numbers have the form DDMMYYYY-NNNN, where NNNN is the daily
sequence. Static assets (logo.png, calibri.ttf, optionally stamp.jpg)
are resolved from BILLMAKER_ASSET_DIR.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Billmaker CLI executed")

		fmt.Println("Welcome to Billmaker!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// buildPipeline assembles the pipeline from configuration: SQLite store
// (with migrations applied), template renderer, and the password-based
// authorizer carrying the operator-supplied password for this request.
func buildPipeline(suppliedPassword string) (*invoice.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st := store.New(cfg.DatabasePath)
	if err := st.Init(); err != nil {
		return nil, err
	}

	renderer := pdf.NewRenderer(pdf.DefaultTemplate(cfg.LogoPath(), cfg.StampPath(), cfg.FontPath()))

	authorizer := &auth.PasswordAuthorizer{
		PrintPassword: cfg.PrintPassword,
		AdminPassword: cfg.AdminPassword,
		Supplied:      suppliedPassword,
	}

	return invoice.NewPipeline(st, renderer, authorizer, cfg.OutputDir, cfg.Staff), nil
}
