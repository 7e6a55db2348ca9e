package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billmaker/internal/invoice"
	"billmaker/internal/logger"
	"billmaker/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a PDF invoice and record it in the local history",
	Long: `Create an invoice for a client. The command assigns the next daily
invoice number, renders the company's PDF template, writes the document
to the output directory, and persists a summary record.

Service lines are given as repeated --service flags in the form
"description=amount". At least one line is required and amounts must
not be negative. The signer must be one of the configured staff names
(BILLMAKER_STAFF).

If BILLMAKER_PRINT_PASSWORD is set, the matching --password must be
supplied.`,
	Example: `  # Single service line, no VAT
  billmaker create --client "Acme LLC" --address "12 Harbour Rd" \
      --contact "+968 9000 0000" --service "Setup Fee=200.00" \
      --signed-by "Imaaduddin Khan"

  # Multiple lines with 5% VAT
  billmaker create --client "Acme LLC" --address "12 Harbour Rd" \
      --contact "+968 9000 0000" \
      --service "Consulting=100.00" --service "Hosting=50.00" \
      --signed-by "Bilawal Ali" --vat`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("client", "", "Client name")
	createCmd.Flags().String("address", "", "Billable client address")
	createCmd.Flags().String("contact", "", "Client contact number")
	createCmd.Flags().StringArray("service", nil, `Service line as "description=amount" (repeatable)`)
	createCmd.Flags().String("signed-by", "", "Signing staff member")
	createCmd.Flags().Bool("vat", false, "Apply 5% VAT to the total")
	createCmd.Flags().String("password", "", "Printing password, if configured")

	_ = createCmd.MarkFlagRequired("client")
	_ = createCmd.MarkFlagRequired("service")
	_ = createCmd.MarkFlagRequired("signed-by")
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("create")

	clientName, _ := cmd.Flags().GetString("client")
	address, _ := cmd.Flags().GetString("address")
	contact, _ := cmd.Flags().GetString("contact")
	rawServices, _ := cmd.Flags().GetStringArray("service")
	signedBy, _ := cmd.Flags().GetString("signed-by")
	applyVAT, _ := cmd.Flags().GetBool("vat")
	password, _ := cmd.Flags().GetString("password")

	services, err := parseServices(rawServices)
	if err != nil {
		return err
	}

	log.Info().
		Str("client", clientName).
		Int("services", len(services)).
		Bool("vat", applyVAT).
		Str("signed_by", signedBy).
		Msg("Starting invoice creation")

	pipeline, err := buildPipeline(password)
	if err != nil {
		return err
	}

	record, err := pipeline.CreateInvoice(context.Background(), invoice.ClientInfo{
		Name:    clientName,
		Address: address,
		Contact: contact,
	}, services, signedBy, applyVAT)
	if err != nil {
		log.Error().
			Err(err).
			Str("client", clientName).
			Msg("Invoice creation failed")
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	fmt.Fprintf(os.Stdout, "Invoice generated: %s\n", record.PDFPath)
	return nil
}

// parseServices turns repeated "description=amount" flags into service
// lines. The split is on the last '=', so descriptions may contain one.
func parseServices(raw []string) ([]models.ServiceLine, error) {
	services := make([]models.ServiceLine, 0, len(raw))
	for _, entry := range raw {
		idx := strings.LastIndex(entry, "=")
		if idx <= 0 || idx == len(entry)-1 {
			return nil, fmt.Errorf("invalid service %q: expected \"description=amount\"", entry)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(entry[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid amount in service %q: %w", entry, err)
		}
		services = append(services, models.ServiceLine{
			Description: strings.TrimSpace(entry[:idx]),
			Amount:      amount,
		})
	}
	return services, nil
}
