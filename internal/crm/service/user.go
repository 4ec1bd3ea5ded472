package service

import (
	"context"
	"strings"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

type UserService struct {
	Store store.Store
}

// ProfileByID builds the dashboard profile for a user. The display name is
// the local part of the email; the account model has no separate name field.
func (s *UserService) ProfileByID(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	name, _, _ := strings.Cut(user.Email, "@")
	return domain.Profile{
		ID:    user.ID,
		Email: user.Email,
		Name:  name,
		Role:  "User",
	}, nil
}
