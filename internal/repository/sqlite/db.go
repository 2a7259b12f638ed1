package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"golang.org/x/text/cases"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"wallet-api/internal/repository/migrations"
)

// foldFunc is the SQL name of the Unicode case folding function; built-in lower() and LIKE fold ASCII only.
const foldFunc = "casefold"

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(foldFunc, 1, casefold); err != nil {
		panic(fmt.Sprintf("register %s: %v", foldFunc, err))
	}
}

func casefold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return foldCase(v), nil
	case []byte:
		return foldCase(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", foldFunc, v)
	}
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Open opens (or creates) a sqlite database at the given path, ensures directories exist and applies the schema.
func Open(ctx context.Context, path string, logger goose.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single connection serialises writers and keeps the pragma below in effect
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.SQLite, logger); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
