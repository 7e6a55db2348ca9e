// Package invoice ties together invoice numbering, document rendering
// and persistence for a single-operator billing tool.
//
// The pipeline is stateless between invocations: every call queries the
// store for what it needs, and nothing is batched or retried. A failed
// render persists nothing; a failed insert after a successful render
// leaves the document on disk and logs the orphaned path.
package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"billmaker/internal/logger"
	"billmaker/pkg/models"
)

// RecordStore is the durable record of every generated invoice.
type RecordStore interface {
	// Insert appends rec, assigning its surrogate id and creation date.
	Insert(rec *models.InvoiceRecord) error

	// ListRecent returns up to limit records, most recent first.
	ListRecent(limit int) ([]models.InvoiceRecord, error)

	// CountToday returns how many records were created on the given day.
	CountToday(today time.Time) (int, error)

	// ClearAll irreversibly deletes every record.
	ClearAll() error
}

// DocumentRenderer turns a fully-populated record into document bytes.
type DocumentRenderer interface {
	Render(rec *models.InvoiceRecord, applyVAT bool) ([]byte, error)

	// OutputName is the file-naming convention for rendered documents.
	OutputName(invoiceNumber string) string
}

// Authorizer is the host-injected capability check. The pipeline never
// embeds or compares secrets itself.
type Authorizer interface {
	// CanPrint reports whether invoice creation is permitted.
	CanPrint() error

	// CanClearAll reports whether the bulk clear is permitted.
	CanClearAll() error
}

// ClientInfo carries the free-text client fields collected by the host.
type ClientInfo struct {
	Name    string
	Address string
	Contact string
}

// Pipeline orchestrates one invoice-creation flow at a time.
type Pipeline struct {
	store     RecordStore
	renderer  DocumentRenderer
	auth      Authorizer
	outputDir string
	staff     []string
	log       zerolog.Logger
}

// NewPipeline wires the pipeline to its collaborators. outputDir is
// where rendered documents are written; staff is the set of names
// allowed to sign.
func NewPipeline(store RecordStore, renderer DocumentRenderer, auth Authorizer, outputDir string, staff []string) *Pipeline {
	return &Pipeline{
		store:     store,
		renderer:  renderer,
		auth:      auth,
		outputDir: outputDir,
		staff:     staff,
		log:       logger.WithComponent("pipeline"),
	}
}

// NextIdentifier previews the identifier the next invoice would get.
// No side effects; the number is only reserved once CreateInvoice runs.
func (p *Pipeline) NextIdentifier(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrapPipelineError("NextIdentifier", err, "")
	}
	now := time.Now()
	count, err := p.store.CountToday(now)
	if err != nil {
		return "", wrapPipelineError("NextIdentifier", err, "daily count")
	}
	return NextNumber(now, count), nil
}

// CreateInvoice runs the full flow: validate, authorize, number,
// render, write the document, persist the record. Each step is a hard
// dependency on the previous one succeeding, and nothing is retried.
func (p *Pipeline) CreateInvoice(ctx context.Context, client ClientInfo, services []models.ServiceLine, signedBy string, applyVAT bool) (*models.InvoiceRecord, error) {
	const op = "CreateInvoice"

	if err := ctx.Err(); err != nil {
		return nil, wrapPipelineError(op, err, "")
	}
	if err := p.validate(services, signedBy); err != nil {
		return nil, wrapPipelineError(op, err, "")
	}
	if err := p.auth.CanPrint(); err != nil {
		return nil, wrapPipelineError(op, fmt.Errorf("%w: %v", ErrNotAuthorized, err), "print capability denied")
	}

	now := time.Now()
	count, err := p.store.CountToday(now)
	if err != nil {
		return nil, wrapPipelineError(op, err, "daily count")
	}
	number := NextNumber(now, count)

	candidate := &models.InvoiceRecord{
		InvoiceNumber: number,
		ClientName:    client.Name,
		ClientAddress: client.Address,
		ClientContact: client.Contact,
		Services:      services,
		SignedBy:      signedBy,
	}

	p.log.Info().
		Str("invoice_number", number).
		Str("client", client.Name).
		Int("services", len(services)).
		Bool("vat", applyVAT).
		Msg("Creating invoice")

	docBytes, err := p.renderer.Render(candidate, applyVAT)
	if err != nil {
		return nil, wrapPipelineError(op, err, "render document")
	}

	docPath := filepath.Join(p.outputDir, p.renderer.OutputName(number))
	if err := os.WriteFile(docPath, docBytes, 0644); err != nil {
		// Best effort: a half-written document must not survive.
		_ = os.Remove(docPath)
		return nil, wrapPipelineError(op, fmt.Errorf("%w: write %s: %v", ErrRenderFailed, docPath, err), "")
	}
	candidate.PDFPath = docPath

	if err := p.store.Insert(candidate); err != nil {
		// The rendered document stays behind; record it so an operator
		// can clean up.
		p.log.Error().
			Err(err).
			Str("orphaned_pdf", docPath).
			Str("invoice_number", number).
			Msg("Record insert failed after render, document orphaned on disk")
		return nil, wrapPipelineError(op, err, "persist record")
	}

	p.log.Info().
		Int64("id", candidate.ID).
		Str("invoice_number", candidate.InvoiceNumber).
		Str("pdf_path", candidate.PDFPath).
		Str("grand_total", candidate.GrandTotal(applyVAT).StringFixed(2)).
		Msg("Invoice created")
	return candidate, nil
}

// ListRecent returns up to limit records for history display, most
// recent invoice first.
func (p *Pipeline) ListRecent(ctx context.Context, limit int) ([]models.InvoiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapPipelineError("ListRecent", err, "")
	}
	if limit < 0 {
		limit = 0
	}
	records, err := p.store.ListRecent(limit)
	if err != nil {
		return nil, wrapPipelineError("ListRecent", err, "")
	}
	return records, nil
}

// ClearAll irreversibly empties the store. The host layer is expected
// to have run its own confirmation step before calling.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	const op = "ClearAll"

	if err := ctx.Err(); err != nil {
		return wrapPipelineError(op, err, "")
	}
	if err := p.auth.CanClearAll(); err != nil {
		return wrapPipelineError(op, fmt.Errorf("%w: %v", ErrNotAuthorized, err), "clear capability denied")
	}
	if err := p.store.ClearAll(); err != nil {
		return wrapPipelineError(op, err, "")
	}
	return nil
}

// validate enforces the finalization invariants at the pipeline
// boundary instead of trusting the host's input widgets.
func (p *Pipeline) validate(services []models.ServiceLine, signedBy string) error {
	if len(services) == 0 {
		return ErrNoServices
	}
	for i, s := range services {
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: line %d (%s)", ErrNegativeAmount, i+1, s.Description)
		}
	}
	for _, name := range p.staff {
		if name == signedBy {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSigner, signedBy)
}
