package pdf

// Font names the typeface a template renders with. When File is set it
// points at a TTF resource that must exist (brand fonts ship as files);
// when File is empty, Family must be one of the PDF core fonts.
type Font struct {
	Family string
	File   string
}

// Template describes the fixed visual layout of an invoice as data, so
// the look can be swapped without touching the pipeline: company
// identity lines, static assets, the fixed paragraphs and the table
// headings. The renderer consumes it verbatim.
type Template struct {
	// CompanyLines print under the logo, top-left.
	CompanyLines []string

	// LogoPath is mandatory; rendering aborts when it is missing.
	LogoPath string

	// StampPath is optional; the stamp is silently omitted when absent.
	StampPath string

	Font Font

	// ServiceHeader and AmountHeader title the two table columns.
	ServiceHeader string
	AmountHeader  string

	// Greeting is prefixed with the client name; Intro and Closing are
	// the fixed paragraphs around the service table.
	Greeting string
	Intro    string
	Closing  string

	// SignatureLabel prefixes the signing staff member's name.
	SignatureLabel string
}

// DefaultTemplate returns the company's standard invoice layout with
// assets at the given paths.
func DefaultTemplate(logoPath, stampPath, fontPath string) Template {
	return Template{
		CompanyLines: []string{
			"Aiwa Media Group",
			"Formerly known as AiwaDigitals",
			"HGRW+VMV, 3711 Way, Muscat, Oman",
		},
		LogoPath:      logoPath,
		StampPath:     stampPath,
		Font:          Font{Family: "Calibri", File: fontPath},
		ServiceHeader: "Service Description",
		AmountHeader:  "Value (OMR)",
		Greeting:      "Dear ",
		Intro: "We hope this message finds you well. We are writing to inform you " +
			"that a new invoice for the services rendered by Aiwa Media Group is now " +
			"available. The invoice reflects the recent transactions and services " +
			"provided, and it is ready for your review and payment.",
		Closing: "We kindly request that you access the invoice at your earliest " +
			"convenience through our secure online portal/E-mail/PDF. Your prompt " +
			"attention to this matter is greatly appreciated, as it will ensure the " +
			"continued smooth operation of our professional relationship. Should you " +
			"have any inquiries or require assistance, please do not hesitate to " +
			"contact us.",
		SignatureLabel: "Application Signed By: ",
	}
}
