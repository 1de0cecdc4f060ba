package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"slices"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

var requiredTables = []string{
	"users",
	"refresh_tokens",
	"tickets",
}

// Indexes the repositories rely on. refresh_tokens_pkey makes a token map to at
// most one record; users_email_lower_idx backs the case-insensitive email
// uniqueness that registration reports as a conflict.
var requiredIndexes = []string{
	"refresh_tokens_pkey",
	"refresh_tokens_user_id_idx",
	"users_email_lower_idx",
	"tickets_project_idx",
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	missingTables, err := db.missing(ctx, tablesQuery, requiredTables)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}
	missingIndexes, err := db.missing(ctx, indexesQuery, requiredIndexes)
	if err != nil {
		return fmt.Errorf("check existing indexes: %w", err)
	}

	if len(missingTables) == 0 && len(missingIndexes) == 0 {
		slog.Info("database schema ensured")
		return nil
	}

	slog.Info("database schema incomplete; applying initial migration",
		"missing_tables", missingTables,
		"missing_indexes", missingIndexes,
	)
	if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
		return fmt.Errorf("apply initial migration: %w", err)
	}

	if missingTables, err = db.missing(ctx, tablesQuery, requiredTables); err != nil {
		return fmt.Errorf("re-check tables after migration: %w", err)
	}
	if len(missingTables) > 0 {
		return fmt.Errorf("schema initialization incomplete: missing tables %v", missingTables)
	}

	// A pre-existing refresh_tokens table without its primary key cannot be
	// repaired by the idempotent migration.
	if missingIndexes, err = db.missing(ctx, indexesQuery, requiredIndexes); err != nil {
		return fmt.Errorf("re-check indexes after migration: %w", err)
	}
	if len(missingIndexes) > 0 {
		return fmt.Errorf("schema initialization incomplete: missing indexes %v", missingIndexes)
	}

	slog.Info("database schema ensured")
	return nil
}

const (
	tablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)`

	indexesQuery = `
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = 'public'
		  AND indexname = ANY($1)`
)

// missing returns the names from want that the catalog query does not report.
func (db *DB) missing(ctx context.Context, query string, want []string) ([]string, error) {
	rows, err := db.Pool.Query(ctx, query, want)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make([]string, 0, len(want))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		found = append(found, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var absent []string
	for _, name := range want {
		if !slices.Contains(found, name) {
			absent = append(absent, name)
		}
	}
	return absent, nil
}
