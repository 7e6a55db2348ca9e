package pdf_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmaker/internal/invoice"
	"billmaker/internal/pdf"
	"billmaker/pkg/models"
)

// writeTestLogo creates a tiny PNG so rendering can run without the
// real brand assets.
func writeTestLogo(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0x20, G: 0x60, B: 0xa0, A: 0xff})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// testTemplate uses a PDF core font so no TTF has to ship with the
// tests; the layout is otherwise the default one.
func testTemplate(t *testing.T) pdf.Template {
	t.Helper()

	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writeTestLogo(t, logo)

	tpl := pdf.DefaultTemplate(logo, filepath.Join(dir, "stamp.jpg"), "")
	tpl.Font = pdf.Font{Family: "Helvetica"}
	return tpl
}

func sampleRecord() *models.InvoiceRecord {
	return &models.InvoiceRecord{
		InvoiceNumber: "28082026-0001",
		ClientName:    "Acme LLC",
		ClientAddress: "12 Harbour Rd, Muscat",
		ClientContact: "+968 9000 0000",
		Services: []models.ServiceLine{
			{Description: "Consulting", Amount: decimal.NewFromFloat(100.00)},
			{Description: "Hosting", Amount: decimal.NewFromFloat(50.00)},
		},
		SignedBy: "Bilawal Ali",
	}
}

func TestRender(t *testing.T) {
	r := pdf.NewRenderer(testTemplate(t))

	out, err := r.Render(sampleRecord(), true)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderWithoutVAT(t *testing.T) {
	r := pdf.NewRenderer(testTemplate(t))

	out, err := r.Render(sampleRecord(), false)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderMissingStampIsIgnored(t *testing.T) {
	tpl := testTemplate(t)
	tpl.StampPath = filepath.Join(t.TempDir(), "no-stamp.jpg")
	r := pdf.NewRenderer(tpl)

	out, err := r.Render(sampleRecord(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderMissingLogoFails(t *testing.T) {
	tpl := testTemplate(t)
	tpl.LogoPath = filepath.Join(t.TempDir(), "missing.png")
	r := pdf.NewRenderer(tpl)

	out, err := r.Render(sampleRecord(), false)
	assert.ErrorIs(t, err, invoice.ErrMissingAsset)
	assert.Nil(t, out)
}

func TestRenderMissingFontFails(t *testing.T) {
	tpl := testTemplate(t)
	tpl.Font = pdf.Font{Family: "Calibri", File: filepath.Join(t.TempDir(), "calibri.ttf")}
	r := pdf.NewRenderer(tpl)

	out, err := r.Render(sampleRecord(), false)
	assert.ErrorIs(t, err, invoice.ErrMissingAsset)
	assert.Nil(t, out)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "invoice_28082026-0001.pdf", pdf.OutputName("28082026-0001"))
}
