// Package store persists invoice records in a local SQLite database.
//
// The store is built for a single interactive operator: every operation
// opens its own connection, uses it, and closes it. There is no shared
// long-lived handle and no locking beyond what SQLite provides for
// single-writer access.
package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"billmaker/internal/invoice"
	"billmaker/internal/logger"
	"billmaker/pkg/models"
)

const dateLayout = "2006-01-02"

// Store is a durable, queryable record of every generated invoice.
type Store struct {
	dsn string
	log zerolog.Logger

	// now is swapped in tests to control DateCreated stamping.
	now func() time.Time
}

// New creates a Store backed by the SQLite database at path. Call Init
// before the first operation.
func New(path string) *Store {
	return &Store{
		dsn: path,
		log: logger.WithComponent("store"),
		now: time.Now,
	}
}

func (s *Store) open() (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", invoice.ErrStorageUnavailable, s.dsn, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Init ensures the schema exists and applies any missing additive
// migrations. Safe to call on every startup.
func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, m := range migrations {
		if err := m.apply(db); err != nil {
			s.log.Error().
				Err(err).
				Int("version", m.version).
				Str("migration", m.describe).
				Msg("Schema migration failed")
			return fmt.Errorf("%w: migration %d (%s): %v",
				invoice.ErrStorageUnavailable, m.version, m.describe, err)
		}
		s.log.Debug().
			Int("version", m.version).
			Str("migration", m.describe).
			Msg("Schema migration applied")
	}
	return nil
}

// Insert appends a new record, assigning a fresh surrogate id and
// stamping the current date. The record's ID and DateCreated fields are
// filled in on success.
func (s *Store) Insert(rec *models.InvoiceRecord) error {
	if err := rec.SerializeServices(); err != nil {
		return fmt.Errorf("%w: serialize services: %v", invoice.ErrStorageUnavailable, err)
	}
	rec.DateCreated = s.now().Format(dateLayout)

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.NamedExec(`INSERT INTO invoices
        (invoice_number, client_name, client_address, client_contact, services, signed_by, pdf_path, date_created)
        VALUES (:invoice_number, :client_name, :client_address, :client_contact, :services, :signed_by, :pdf_path, :date_created)`,
		rec)
	if err != nil {
		return fmt.Errorf("%w: insert: %v", invoice.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: insert id: %v", invoice.ErrStorageUnavailable, err)
	}
	rec.ID = id

	s.log.Info().
		Int64("id", rec.ID).
		Str("invoice_number", rec.InvoiceNumber).
		Str("date_created", rec.DateCreated).
		Msg("Invoice record persisted")
	return nil
}

// ListRecent returns up to limit records, most recent invoice first:
// date_created descending, ties broken by id descending.
func (s *Store) ListRecent(limit int) ([]models.InvoiceRecord, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var records []models.InvoiceRecord
	err = db.Select(&records,
		`SELECT id, invoice_number, client_name, client_address, client_contact,
                services, signed_by, pdf_path, date_created
         FROM invoices ORDER BY date_created DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent: %v", invoice.ErrStorageUnavailable, err)
	}
	return records, nil
}

// CountToday returns the number of records created on the given day.
func (s *Store) CountToday(today time.Time) (int, error) {
	db, err := s.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int
	err = db.Get(&count, `SELECT COUNT(*) FROM invoices WHERE date_created = ?`,
		today.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("%w: count today: %v", invoice.ErrStorageUnavailable, err)
	}
	return count, nil
}

// ClearAll irreversibly deletes every record.
func (s *Store) ClearAll() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec(`DELETE FROM invoices`)
	if err != nil {
		return fmt.Errorf("%w: clear all: %v", invoice.ErrStorageUnavailable, err)
	}

	deleted, _ := res.RowsAffected()
	s.log.Warn().
		Int64("deleted", deleted).
		Msg("All invoice records cleared")
	return nil
}
