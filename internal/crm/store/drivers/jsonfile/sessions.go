package jsonfile

import (
	"context"

	"github.com/yourfavcrm/crm/internal/crm/store"
)

type sessionsRepo struct {
	s *Store
}

func (r *sessionsRepo) CreateSession(ctx context.Context, token, userID string) error {
	return r.s.update(func(doc *document) error {
		doc.Sessions[token] = userID
		return nil
	})
}

func (r *sessionsRepo) ResolveSession(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.s.view(func(doc *document) error {
		id, ok := doc.Sessions[token]
		if !ok {
			return store.ErrNotFound
		}
		userID = id
		return nil
	})
	return userID, err
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, token string) error {
	return r.s.update(func(doc *document) error {
		delete(doc.Sessions, token)
		return nil
	})
}
