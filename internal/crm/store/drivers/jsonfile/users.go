package jsonfile

import (
	"context"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return r.s.update(func(doc *document) error {
		for _, existing := range doc.Users {
			if existing.Email == u.Email {
				return store.ErrAlreadyExists
			}
		}
		doc.Users = append(doc.Users, u)
		return nil
	})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var found domain.User
	err := r.s.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				found = u
				return nil
			}
		}
		return store.ErrNotFound
	})
	return found, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var found domain.User
	err := r.s.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				found = u
				return nil
			}
		}
		return store.ErrNotFound
	})
	return found, err
}
