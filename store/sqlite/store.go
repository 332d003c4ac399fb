// Package sqlite provides a SQLite-backed TokenStore so the Credential Pair
// survives process restarts on the client machine.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/gatehouse/store"
)

// Compile-time interface check.
var _ store.TokenStore = (*Store)(nil)

// Store is a SQLite implementation of the TokenStore.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite token store.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("gatehouse/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("gatehouse/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored credentials, or zero credentials when the row
// does not exist.
func (s *Store) Load(ctx context.Context) (store.Credentials, error) {
	m := new(credentialModel)
	err := s.sdb.NewSelect(m).Where("id = ?", credentialRowID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Credentials{}, nil
		}
		return store.Credentials{}, fmt.Errorf("gatehouse: load credentials: %w", err)
	}
	return credentialsFromModel(m), nil
}

// Save replaces the stored credentials wholesale. The table holds at most
// one row.
func (s *Store) Save(ctx context.Context, creds store.Credentials) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	m := credentialsToModel(creds)
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("gatehouse: save credentials: %w", err)
	}
	return nil
}

// Clear removes the stored credentials.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.sdb.NewDelete((*credentialModel)(nil)).
		Where("id = ?", credentialRowID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gatehouse: clear credentials: %w", err)
	}
	return nil
}
