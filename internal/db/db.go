// Package db opens the SQLite store and keeps its schema current through
// embedded, versioned migrations.
package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the SQLite database at path and applies any pending
// migrations. Foreign-key enforcement is switched on for every pooled
// connection so referential violations fail loudly instead of silently
// orphaning rows.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "library.db"
	}
	// DSN options apply per connection; a plain PRAGMA would only reach
	// whichever pooled connection happened to execute it.
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	d, err := sql.Open("sqlite3", path+sep+"_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}

	// WAL is unsupported for in-memory databases; ignore errors there.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)

	if err := Migrate(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}
