package invoice_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmaker/internal/invoice"
	"billmaker/pkg/models"
)

var staff = []string{"Imaaduddin Khan", "Bilawal Ali"}

type fakeStore struct {
	countToday int
	countErr   error
	insertErr  error
	inserted   []*models.InvoiceRecord
	records    []models.InvoiceRecord
	cleared    bool
}

func (f *fakeStore) Insert(rec *models.InvoiceRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	rec.ID = int64(len(f.inserted) + 1)
	rec.DateCreated = time.Now().Format("2006-01-02")
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeStore) ListRecent(limit int) ([]models.InvoiceRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeStore) CountToday(time.Time) (int, error) {
	return f.countToday, f.countErr
}

func (f *fakeStore) ClearAll() error {
	f.cleared = true
	return nil
}

type fakeRenderer struct {
	out    []byte
	err    error
	called bool
}

func (f *fakeRenderer) Render(rec *models.InvoiceRecord, applyVAT bool) ([]byte, error) {
	f.called = true
	return f.out, f.err
}

func (f *fakeRenderer) OutputName(invoiceNumber string) string {
	return "invoice_" + invoiceNumber + ".pdf"
}

type fakeAuth struct {
	printErr error
	clearErr error
}

func (f *fakeAuth) CanPrint() error    { return f.printErr }
func (f *fakeAuth) CanClearAll() error { return f.clearErr }

func lines(amounts ...float64) []models.ServiceLine {
	var out []models.ServiceLine
	for i, a := range amounts {
		out = append(out, models.ServiceLine{
			Description: "Service " + string(rune('A'+i)),
			Amount:      decimal.NewFromFloat(a),
		})
	}
	return out
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	client := invoice.ClientInfo{Name: "Acme LLC", Address: "12 Harbour Rd", Contact: "+968 9000 0000"}

	t.Run("success", func(t *testing.T) {
		dir := t.TempDir()
		st := &fakeStore{countToday: 2}
		rend := &fakeRenderer{out: []byte("%PDF-1.4 fake")}
		p := invoice.NewPipeline(st, rend, &fakeAuth{}, dir, staff)

		rec, err := p.CreateInvoice(ctx, client, lines(100.00, 50.00), "Bilawal Ali", true)
		require.NoError(t, err)

		wantNumber := time.Now().Format("02012006") + "-0003"
		assert.Equal(t, wantNumber, rec.InvoiceNumber)
		assert.Equal(t, "Acme LLC", rec.ClientName)
		assert.Equal(t, "157.50", rec.GrandTotal(true).StringFixed(2))

		wantPath := filepath.Join(dir, "invoice_"+wantNumber+".pdf")
		assert.Equal(t, wantPath, rec.PDFPath)
		data, err := os.ReadFile(wantPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), data)

		require.Len(t, st.inserted, 1)
		assert.Same(t, rec, st.inserted[0])
	})

	t.Run("empty service list is rejected", func(t *testing.T) {
		st := &fakeStore{}
		rend := &fakeRenderer{out: []byte("x")}
		p := invoice.NewPipeline(st, rend, &fakeAuth{}, t.TempDir(), staff)

		_, err := p.CreateInvoice(ctx, client, nil, "Bilawal Ali", false)
		assert.ErrorIs(t, err, invoice.ErrNoServices)
		assert.False(t, rend.called)
		assert.Empty(t, st.inserted)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		p := invoice.NewPipeline(&fakeStore{}, &fakeRenderer{}, &fakeAuth{}, t.TempDir(), staff)

		_, err := p.CreateInvoice(ctx, client, lines(10.00, -0.01), "Bilawal Ali", false)
		assert.ErrorIs(t, err, invoice.ErrNegativeAmount)
	})

	t.Run("unknown signer is rejected", func(t *testing.T) {
		p := invoice.NewPipeline(&fakeStore{}, &fakeRenderer{}, &fakeAuth{}, t.TempDir(), staff)

		_, err := p.CreateInvoice(ctx, client, lines(10.00), "Nobody", false)
		assert.ErrorIs(t, err, invoice.ErrUnknownSigner)
	})

	t.Run("denied print capability stops before rendering", func(t *testing.T) {
		st := &fakeStore{}
		rend := &fakeRenderer{out: []byte("x")}
		p := invoice.NewPipeline(st, rend, &fakeAuth{printErr: errors.New("nope")}, t.TempDir(), staff)

		_, err := p.CreateInvoice(ctx, client, lines(10.00), "Bilawal Ali", false)
		assert.ErrorIs(t, err, invoice.ErrNotAuthorized)
		assert.False(t, rend.called)
		assert.Empty(t, st.inserted)
	})

	t.Run("render failure persists nothing and leaves no file", func(t *testing.T) {
		dir := t.TempDir()
		st := &fakeStore{}
		rend := &fakeRenderer{err: invoice.ErrMissingAsset}
		p := invoice.NewPipeline(st, rend, &fakeAuth{}, dir, staff)

		_, err := p.CreateInvoice(ctx, client, lines(10.00), "Bilawal Ali", false)
		assert.ErrorIs(t, err, invoice.ErrMissingAsset)
		assert.Empty(t, st.inserted)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("storage failure after render leaves the document orphaned", func(t *testing.T) {
		dir := t.TempDir()
		st := &fakeStore{insertErr: invoice.ErrStorageUnavailable}
		rend := &fakeRenderer{out: []byte("orphan")}
		p := invoice.NewPipeline(st, rend, &fakeAuth{}, dir, staff)

		_, err := p.CreateInvoice(ctx, client, lines(10.00), "Bilawal Ali", false)
		assert.ErrorIs(t, err, invoice.ErrStorageUnavailable)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		require.Len(t, entries, 1, "rendered PDF should remain on disk")
	})
}

func TestNextIdentifier(t *testing.T) {
	p := invoice.NewPipeline(&fakeStore{countToday: 5}, &fakeRenderer{}, &fakeAuth{}, t.TempDir(), staff)

	next, err := p.NextIdentifier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("02012006")+"-0006", next)
}

func TestClearAll(t *testing.T) {
	t.Run("authorized", func(t *testing.T) {
		st := &fakeStore{}
		p := invoice.NewPipeline(st, &fakeRenderer{}, &fakeAuth{}, t.TempDir(), staff)

		require.NoError(t, p.ClearAll(context.Background()))
		assert.True(t, st.cleared)
	})

	t.Run("denied", func(t *testing.T) {
		st := &fakeStore{}
		p := invoice.NewPipeline(st, &fakeRenderer{}, &fakeAuth{clearErr: errors.New("bad password")}, t.TempDir(), staff)

		err := p.ClearAll(context.Background())
		assert.ErrorIs(t, err, invoice.ErrNotAuthorized)
		assert.False(t, st.cleared)
	})
}
