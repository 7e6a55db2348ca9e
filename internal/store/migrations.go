package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// A migration is one forward-only, additive schema step. Migrations are
// applied in order on every startup and must be idempotent; none may
// remove or rename a column.
type migration struct {
	version  int
	describe string
	apply    func(db *sqlx.DB) error
}

var migrations = []migration{
	{
		version:  1,
		describe: "create invoices table",
		apply: func(db *sqlx.DB) error {
			_, err := db.Exec(`CREATE TABLE IF NOT EXISTS invoices (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                invoice_number TEXT NOT NULL,
                client_name TEXT,
                client_address TEXT,
                client_contact TEXT,
                services TEXT,
                signed_by TEXT,
                pdf_path TEXT
            );`)
			return err
		},
	},
	{
		version:  2,
		describe: "add date_created column",
		apply: func(db *sqlx.DB) error {
			return addColumnIfMissing(db, "invoices", "date_created", "DATE")
		},
	},
}

// addColumnIfMissing alters the table only when the column is absent,
// so re-running the migration list is harmless.
func addColumnIfMissing(db *sqlx.DB, table, column, sqlType string) error {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notnull    int
			dfltValue  any
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &primaryKey); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, sqlType))
	return err
}
