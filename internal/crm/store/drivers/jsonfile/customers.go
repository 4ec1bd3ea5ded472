package jsonfile

import (
	"context"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

type customersRepo struct {
	s *Store
}

func (r *customersRepo) ListCustomers(ctx context.Context, ownerID string) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.s.view(func(doc *document) error {
		customers = append(customers, doc.Customers[ownerID]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customersRepo) CreateCustomer(ctx context.Context, ownerID string, c domain.Customer) error {
	return r.s.update(func(doc *document) error {
		doc.Customers[ownerID] = append(doc.Customers[ownerID], c)
		return nil
	})
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, ownerID, id string, p domain.CustomerPatch) (domain.Customer, error) {
	var updated domain.Customer
	err := r.s.update(func(doc *document) error {
		list := doc.Customers[ownerID]
		for i := range list {
			if list[i].ID == id {
				list[i].Apply(p)
				updated = list[i]
				return nil
			}
		}
		return store.ErrNotFound
	})
	return updated, err
}

func (r *customersRepo) DeleteCustomer(ctx context.Context, ownerID, id string) (domain.Customer, error) {
	var removed domain.Customer
	err := r.s.update(func(doc *document) error {
		list := doc.Customers[ownerID]
		for i := range list {
			if list[i].ID == id {
				removed = list[i]
				doc.Customers[ownerID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
	return removed, err
}
