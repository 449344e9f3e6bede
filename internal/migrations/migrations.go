// Package migrations holds the embedded goose migrations for the
// ledger schema.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

func setup() error {
	goose.SetBaseFS(fs)
	return goose.SetDialect("sqlite3")
}

func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Down(db, ".")
}

func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Status(db, ".")
}

func Reset(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Reset(db, ".")
}
