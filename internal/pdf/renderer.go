// Package pdf renders invoice records into fixed-layout PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"billmaker/internal/invoice"
	"billmaker/internal/logger"
	"billmaker/pkg/models"
)

// lastBillableLayout formats the last calendar day of the render month.
const lastBillableLayout = "02 January 06"

// Renderer draws invoice records according to a Template.
type Renderer struct {
	tpl Template
	log zerolog.Logger
}

// NewRenderer creates a Renderer for the given template.
func NewRenderer(tpl Template) *Renderer {
	return &Renderer{
		tpl: tpl,
		log: logger.WithComponent("pdf"),
	}
}

// OutputName returns the conventional file name for a rendered invoice.
func OutputName(invoiceNumber string) string {
	return fmt.Sprintf("invoice_%s.pdf", invoiceNumber)
}

// OutputName implements the pipeline's DocumentRenderer interface.
func (r *Renderer) OutputName(invoiceNumber string) string {
	return OutputName(invoiceNumber)
}

// Render produces the PDF bytes for a record. Rendering happens
// entirely in memory; a failure leaves nothing on disk. Missing
// mandatory assets (logo, brand font file) abort with ErrMissingAsset;
// a missing stamp is silently omitted.
func (r *Renderer) Render(rec *models.InvoiceRecord, applyVAT bool) ([]byte, error) {
	if err := r.checkAssets(); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	if r.tpl.Font.File != "" {
		doc.AddUTF8Font(r.tpl.Font.Family, "", r.tpl.Font.File)
	}
	doc.SetFont(r.tpl.Font.Family, "", 12)

	pageW, pageH := doc.GetPageSize()

	// Border rectangle near the page edges.
	doc.SetLineWidth(0.5)
	doc.SetDrawColor(0, 0, 0)
	doc.Rect(1, 1, pageW-2, pageH-2, "D")

	// Company block, top-left.
	doc.Image(r.tpl.LogoPath, 10, 8, 40, 0, false, "", 0, "")
	doc.SetXY(10, 25)
	for _, line := range r.tpl.CompanyLines {
		doc.CellFormat(100, 5, line, "", 1, "L", false, 0, "")
	}

	// Client block, right-aligned.
	doc.SetXY(90, 10)
	doc.CellFormat(0, 10, "Invoice Number: "+rec.InvoiceNumber, "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Client Name: "+rec.ClientName, "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Client Address: "+rec.ClientAddress, "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Client Contact: "+rec.ClientContact, "", 1, "R", false, 0, "")
	doc.CellFormat(0, 10, "Last Billable Date: "+r.lastBillableDate(), "", 1, "R", false, 0, "")
	doc.CellFormat(0, 10, "", "", 1, "R", false, 0, "")

	// Introductory paragraph addressed to the client.
	doc.SetXY(10, doc.GetY()+5)
	intro := r.tpl.Greeting + rec.ClientName + ",\n\n" + r.tpl.Intro
	doc.MultiCell(180, 8, intro, "", "L", false)

	// Service table, two bordered columns.
	doc.SetXY(10, doc.GetY()+10)
	doc.CellFormat(90, 10, r.tpl.ServiceHeader, "1", 0, "L", false, 0, "")
	doc.CellFormat(90, 10, r.tpl.AmountHeader, "1", 1, "L", false, 0, "")
	for _, s := range rec.Services {
		doc.CellFormat(90, 10, s.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(90, 10, s.Amount.StringFixed(2), "1", 1, "L", false, 0, "")
	}

	// Summary rows.
	doc.CellFormat(90, 10, "Total", "1", 0, "L", false, 0, "")
	doc.CellFormat(90, 10, rec.Total().StringFixed(2), "1", 1, "L", false, 0, "")
	if applyVAT {
		doc.CellFormat(90, 10, "VAT (5%)", "1", 0, "L", false, 0, "")
		doc.CellFormat(90, 10, rec.VAT().StringFixed(2), "1", 1, "L", false, 0, "")
	}
	doc.CellFormat(90, 10, "Grand Total", "1", 0, "L", false, 0, "")
	doc.CellFormat(90, 10, rec.GrandTotal(applyVAT).StringFixed(2), "1", 1, "L", false, 0, "")

	// Closing paragraph.
	doc.SetXY(10, doc.GetY()+5)
	doc.MultiCell(180, 8, r.tpl.Closing, "", "L", false)

	// Signature block with optional stamp.
	sigY := doc.GetY() + 30
	if r.tpl.StampPath != "" {
		if _, err := os.Stat(r.tpl.StampPath); err == nil {
			doc.Image(r.tpl.StampPath, 10, sigY-25, 40, 0, false, "", 0, "")
		} else {
			r.log.Debug().
				Str("stamp", r.tpl.StampPath).
				Msg("Stamp image absent, omitting from signature block")
		}
	}
	doc.SetXY(10, sigY)
	doc.CellFormat(0, 39, r.tpl.SignatureLabel+rec.SignedBy, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		r.log.Error().
			Err(err).
			Str("invoice_number", rec.InvoiceNumber).
			Msg("PDF engine failed")
		return nil, fmt.Errorf("%w: %v", invoice.ErrRenderFailed, err)
	}

	r.log.Info().
		Str("invoice_number", rec.InvoiceNumber).
		Int("bytes", buf.Len()).
		Bool("vat", applyVAT).
		Msg("Invoice document rendered")
	return buf.Bytes(), nil
}

// checkAssets verifies the mandatory static assets before any drawing.
func (r *Renderer) checkAssets() error {
	if _, err := os.Stat(r.tpl.LogoPath); err != nil {
		r.log.Error().
			Str("logo", r.tpl.LogoPath).
			Msg("Logo image not found")
		return fmt.Errorf("%w: logo %s", invoice.ErrMissingAsset, r.tpl.LogoPath)
	}
	if r.tpl.Font.File != "" {
		if _, err := os.Stat(r.tpl.Font.File); err != nil {
			r.log.Error().
				Str("font", r.tpl.Font.File).
				Msg("Brand font not found")
			return fmt.Errorf("%w: font %s", invoice.ErrMissingAsset, r.tpl.Font.File)
		}
	}
	return nil
}

// lastBillableDate is the final calendar day of the month the invoice
// is rendered in.
func (r *Renderer) lastBillableDate() string {
	now := time.Now()
	firstOfNext := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return firstOfNext.AddDate(0, 0, -1).Format(lastBillableLayout)
}
