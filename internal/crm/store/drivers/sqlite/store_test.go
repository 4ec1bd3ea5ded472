package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore("file:" + filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUsersConflictAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	alice := domain.User{ID: "u1", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	err := s.Users().CreateUser(ctx, domain.User{ID: "u2", Email: "alice@example.com", PasswordHash: "other"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice, got)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Sessions().CreateSession(ctx, "tok", "u1"))

	userID, err := s.Sessions().ResolveSession(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	require.NoError(t, s.Sessions().DeleteSession(ctx, "tok"))
	require.NoError(t, s.Sessions().DeleteSession(ctx, "tok"), "delete must be idempotent")

	_, err = s.Sessions().ResolveSession(ctx, "tok")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCustomersInsertionOrderAndPatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Customers().CreateCustomer(ctx, "owner", domain.Customer{
		ID: "c1", Name: "Bob", Email: "bob@x.com", Status: domain.CustomerStatusPending, LastContact: "2026-09-01",
	}))
	require.NoError(t, s.Customers().CreateCustomer(ctx, "owner", domain.Customer{
		ID: "c2", Name: "Carol", Status: domain.CustomerStatusActive, LastContact: "2026-09-01",
	}))

	list, err := s.Customers().ListCustomers(ctx, "owner")
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2"}, []string{list[0].ID, list[1].ID})

	status := domain.CustomerStatusActive
	value := 500.0
	updated, err := s.Customers().UpdateCustomer(ctx, "owner", "c1", domain.CustomerPatch{Status: &status, Value: &value})
	require.NoError(t, err)
	require.Equal(t, "Bob", updated.Name)
	require.Equal(t, "bob@x.com", updated.Email)
	require.Equal(t, 500.0, updated.Value)

	removed, err := s.Customers().DeleteCustomer(ctx, "owner", "c2")
	require.NoError(t, err)
	require.Equal(t, "Carol", removed.Name)

	_, err = s.Customers().DeleteCustomer(ctx, "owner", "c2")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCustomersOwnerIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Customers().CreateCustomer(ctx, "u1", domain.Customer{ID: "c1", Name: "Bob"}))

	list, err := s.Customers().ListCustomers(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = s.Customers().UpdateCustomer(ctx, "u2", "c1", domain.CustomerPatch{})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDealsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	deal := domain.Deal{
		ID:                "d1",
		Title:             "Big deal",
		Value:             1000,
		Status:            domain.DealStatusProspecting,
		Priority:          domain.DealPriorityMedium,
		ExpectedCloseDate: "2026-10-01T00:00:00Z",
		CreatedAt:         created,
		UpdatedAt:         created,
		AssignedTo:        "owner",
		Source:            "website",
		Tags:              []string{"q4", "enterprise"},
	}
	require.NoError(t, s.Deals().CreateDeal(ctx, "owner", deal))

	list, err := s.Deals().ListDeals(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Big deal", list[0].Title)
	require.Equal(t, []string{"q4", "enterprise"}, list[0].Tags)
	require.True(t, list[0].CreatedAt.Equal(created))
	require.Equal(t, "owner", list[0].AssignedTo)

	status := domain.DealStatusClosedWon
	updated, err := s.Deals().UpdateDeal(ctx, "owner", "d1", domain.DealPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.DealStatusClosedWon, updated.Status)
	require.Equal(t, "Big deal", updated.Title)
	require.Equal(t, []string{"q4", "enterprise"}, updated.Tags)
	require.True(t, updated.UpdatedAt.After(created))

	removed, err := s.Deals().DeleteDeal(ctx, "owner", "d1")
	require.NoError(t, err)
	require.Equal(t, "d1", removed.ID)

	list, err = s.Deals().ListDeals(ctx, "owner")
	require.NoError(t, err)
	require.Empty(t, list)
}
