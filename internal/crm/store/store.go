package store

import (
	"context"
	"errors"

	"github.com/yourfavcrm/crm/internal/crm/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (jsonfile,
// sqlite) implement this. It exposes sub-repositories to keep concerns tidy
// and testable; each driver is responsible for serializing its own writes so
// concurrent requests never interleave a read-modify-write cycle.
type Store interface {
	Users() Users
	Sessions() Sessions
	Customers() Customers
	Deals() Deals

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the service via ULID).
	// Returns ErrAlreadyExists when the email is already registered
	// (case-sensitive exact match).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type Sessions interface {
	// CreateSession binds an opaque token to a user id. The caller is
	// responsible for ensuring the user exists.
	CreateSession(ctx context.Context, token, userID string) error

	// ResolveSession returns the user id bound to the token, or ErrNotFound.
	// Tokens never expire server-side; they stay valid until deleted.
	ResolveSession(ctx context.Context, token string) (string, error)

	// DeleteSession removes a session. Deleting an unknown token is a no-op.
	DeleteSession(ctx context.Context, token string) error
}

type Customers interface {
	// ListCustomers returns the owner's customers in insertion order. An
	// owner with no customers gets an empty slice, never an error.
	ListCustomers(ctx context.Context, ownerID string) ([]domain.Customer, error)

	// CreateCustomer appends a fully populated record to the owner's
	// collection. Defaults are applied by the service, not the driver.
	CreateCustomer(ctx context.Context, ownerID string, c domain.Customer) error

	// UpdateCustomer merges the patch into the record and returns the
	// updated record. Returns ErrNotFound if the id is not in the owner's
	// collection.
	UpdateCustomer(ctx context.Context, ownerID, id string, p domain.CustomerPatch) (domain.Customer, error)

	// DeleteCustomer removes and returns the record, or ErrNotFound.
	DeleteCustomer(ctx context.Context, ownerID, id string) (domain.Customer, error)
}

type Deals interface {
	// ListDeals returns the owner's deals in insertion order.
	ListDeals(ctx context.Context, ownerID string) ([]domain.Deal, error)

	// CreateDeal appends a fully populated record to the owner's collection.
	CreateDeal(ctx context.Context, ownerID string, d domain.Deal) error

	// UpdateDeal merges the patch into the record, refreshes UpdatedAt and
	// returns the updated record. Returns ErrNotFound if the id is not in
	// the owner's collection.
	UpdateDeal(ctx context.Context, ownerID, id string, p domain.DealPatch) (domain.Deal, error)

	// DeleteDeal removes and returns the record, or ErrNotFound.
	DeleteDeal(ctx context.Context, ownerID, id string) (domain.Deal, error)
}
