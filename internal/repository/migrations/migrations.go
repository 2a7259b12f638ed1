// Package migrations embeds the schema for every supported database dialect and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dialect names a schema directory and the goose dialect that runs it.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func (d Dialect) gooseDialect() (goose.Dialect, error) {
	switch d {
	case SQLite:
		return goose.DialectSQLite3, nil
	case Postgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", string(d))
	}
}

// NewProvider returns a goose provider bound to db and the schema directory of dialect.
// Each provider carries its own state, so databases of different dialects can migrate concurrently.
// A nil logger keeps goose quiet.
func NewProvider(db *sql.DB, dialect Dialect, logger goose.Logger) (*goose.Provider, error) {
	name, err := dialect.gooseDialect()
	if err != nil {
		return nil, err
	}

	dir, err := fs.Sub(FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	opts := []goose.ProviderOption{goose.WithDisableGlobalRegistry(true)}
	if logger != nil {
		opts = append(opts, goose.WithLogger(logger), goose.WithVerbose(true))
	}

	provider, err := goose.NewProvider(name, db, dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("create %s migration provider: %w", dialect, err)
	}
	return provider, nil
}

// Up applies all pending migrations for dialect.
func Up(ctx context.Context, db *sql.DB, dialect Dialect, logger goose.Logger) error {
	provider, err := NewProvider(db, dialect, logger)
	if err != nil {
		return err
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dialect, err)
	}
	return nil
}
