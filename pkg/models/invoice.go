package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed value-added tax rate applied when a client
// requests VAT on an invoice.
var VATRate = decimal.NewFromFloat(0.05)

// ServiceLine is one billable row on an invoice: a free-text
// description and a non-negative amount.
type ServiceLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceRecord is the persisted unit. A record is created once, at the
// moment an invoice is finalized, and never updated in place.
type InvoiceRecord struct {
	// ID is the surrogate key assigned by the store.
	ID int64 `db:"id" json:"id"`

	// InvoiceNumber has the form DDMMYYYY-NNNN where NNNN is the
	// zero-padded sequence within that day.
	InvoiceNumber string `db:"invoice_number" json:"invoice_number"`

	ClientName    string `db:"client_name" json:"client_name"`
	ClientAddress string `db:"client_address" json:"client_address"`
	ClientContact string `db:"client_contact" json:"client_contact"`

	// Services is stored via ServicesJSON as a text column. The stored
	// text is write-only: nothing in the system parses it back.
	Services []ServiceLine `db:"-" json:"services"`

	// ServicesJSON is the serialized form of Services as persisted.
	ServicesJSON string `db:"services" json:"-"`

	// SignedBy is one of the configured staff names.
	SignedBy string `db:"signed_by" json:"signed_by"`

	// PDFPath is the filesystem location of the rendered document.
	PDFPath string `db:"pdf_path" json:"pdf_path"`

	// DateCreated is a calendar date (YYYY-MM-DD, no time component)
	// stamped at persistence time. Its DDMMYYYY form is the prefix of
	// InvoiceNumber.
	DateCreated string `db:"date_created" json:"date_created"`
}

// Total returns the sum of all service amounts.
func (r *InvoiceRecord) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Services {
		total = total.Add(s.Amount)
	}
	return total
}

// VAT returns the 5% tax on the service total.
func (r *InvoiceRecord) VAT() decimal.Decimal {
	return r.Total().Mul(VATRate)
}

// GrandTotal returns Total plus VAT when applyVAT is set, Total alone
// otherwise.
func (r *InvoiceRecord) GrandTotal(applyVAT bool) decimal.Decimal {
	if applyVAT {
		return r.Total().Add(r.VAT())
	}
	return r.Total()
}

// SerializeServices fills ServicesJSON from the structured lines.
func (r *InvoiceRecord) SerializeServices() error {
	b, err := json.Marshal(r.Services)
	if err != nil {
		return err
	}
	r.ServicesJSON = string(b)
	return nil
}
