// Package sqlite implements the store on a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourfavcrm/crm/internal/crm/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database described by dsn, e.g.
// "file:crm.db?_busy_timeout=5000&_journal_mode=WAL".
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps write transactions serialized and avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users         { return &usersRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions   { return &sessionsRepo{db: s.db} }
func (s *Store) Customers() store.Customers { return &customersRepo{db: s.db} }
func (s *Store) Deals() store.Deals         { return &dealsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
