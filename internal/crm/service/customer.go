package service

import (
	"context"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/idx"
)

type CustomerService struct {
	Store store.Store
}

func (s *CustomerService) List(ctx context.Context, ownerID string) ([]domain.Customer, error) {
	return s.Store.Customers().ListCustomers(ctx, ownerID)
}

// Create builds a full record from the partial input and appends it to the
// owner's collection. Omitted fields get their documented defaults;
// lastContact is always the creation date.
func (s *CustomerService) Create(ctx context.Context, ownerID string, input domain.CustomerPatch) (domain.Customer, error) {
	c := domain.Customer{
		Status: domain.CustomerStatusPending,
	}
	c.Apply(input)

	c.ID = idx.New().String()
	c.LastContact = time.Now().UTC().Format("2006-01-02")

	if err := s.Store.Customers().CreateCustomer(ctx, ownerID, c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, ownerID, id string, patch domain.CustomerPatch) (domain.Customer, error) {
	return s.Store.Customers().UpdateCustomer(ctx, ownerID, id, patch)
}

func (s *CustomerService) Delete(ctx context.Context, ownerID, id string) (domain.Customer, error) {
	return s.Store.Customers().DeleteCustomer(ctx, ownerID, id)
}
