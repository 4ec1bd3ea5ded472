// Package jsonfile persists the whole database as a single JSON document on
// disk, matching the layout {users: [], sessions: {}, customers: {}, deals: {}}.
//
// The document is re-read and fully rewritten on every operation. All access
// goes through a store-wide mutex so concurrent requests serialize into a
// single-writer sequence instead of racing on the file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

// document is the on-disk shape. Field names are part of the persisted
// contract and must not change.
type document struct {
	Users     []domain.User                `json:"users"`
	Sessions  map[string]string            `json:"sessions"`
	Customers map[string][]domain.Customer `json:"customers"`
	Deals     map[string][]domain.Deal     `json:"deals"`
}

func newDocument() *document {
	return &document{
		Users:     []domain.User{},
		Sessions:  map[string]string{},
		Customers: map[string][]domain.Customer{},
		Deals:     map[string][]domain.Deal{},
	}
}

type Store struct {
	path string
	mu   chan struct{} // acts as a mutex; see lock/unlock
}

// NewStore opens (or creates) the JSON database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("jsonfile: create data directory: %w", err)
	}

	s := &Store{path: path, mu: make(chan struct{}, 1)}

	// Touch the file so a bad path fails at startup, not mid-request.
	s.lock()
	defer s.unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) lock()   { s.mu <- struct{}{} }
func (s *Store) unlock() { <-s.mu }

// load reads the document from disk, initializing an empty one if the file
// does not exist yet. Callers must hold the lock.
func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := newDocument()
		if err := s.save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read database: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("jsonfile: parse database: %w", err)
	}

	// Older files may omit maps entirely.
	if doc.Sessions == nil {
		doc.Sessions = map[string]string{}
	}
	if doc.Customers == nil {
		doc.Customers = map[string][]domain.Customer{}
	}
	if doc.Deals == nil {
		doc.Deals = map[string][]domain.Deal{}
	}
	return doc, nil
}

// save rewrites the whole document atomically (temp file + rename). Callers
// must hold the lock.
func (s *Store) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode database: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("jsonfile: write database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("jsonfile: replace database: %w", err)
	}
	return nil
}

// view runs fn against a freshly loaded document without persisting changes.
func (s *Store) view(fn func(doc *document) error) error {
	s.lock()
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against a freshly loaded document and persists the result
// when fn succeeds.
func (s *Store) update(fn func(doc *document) error) error {
	s.lock()
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) Users() store.Users         { return &usersRepo{s: s} }
func (s *Store) Sessions() store.Sessions   { return &sessionsRepo{s: s} }
func (s *Store) Customers() store.Customers { return &customersRepo{s: s} }
func (s *Store) Deals() store.Deals         { return &dealsRepo{s: s} }

func (s *Store) Close() error { return nil }

// Ping verifies the database file is readable and parseable.
func (s *Store) Ping(ctx context.Context) error {
	return s.view(func(*document) error { return nil })
}
