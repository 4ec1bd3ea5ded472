package jsonfile

import (
	"context"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

type dealsRepo struct {
	s *Store
}

func (r *dealsRepo) ListDeals(ctx context.Context, ownerID string) ([]domain.Deal, error) {
	deals := []domain.Deal{}
	err := r.s.view(func(doc *document) error {
		deals = append(deals, doc.Deals[ownerID]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *dealsRepo) CreateDeal(ctx context.Context, ownerID string, d domain.Deal) error {
	return r.s.update(func(doc *document) error {
		doc.Deals[ownerID] = append(doc.Deals[ownerID], d)
		return nil
	})
}

func (r *dealsRepo) UpdateDeal(ctx context.Context, ownerID, id string, p domain.DealPatch) (domain.Deal, error) {
	var updated domain.Deal
	err := r.s.update(func(doc *document) error {
		list := doc.Deals[ownerID]
		for i := range list {
			if list[i].ID == id {
				list[i].Apply(p, time.Now().UTC())
				updated = list[i]
				return nil
			}
		}
		return store.ErrNotFound
	})
	return updated, err
}

func (r *dealsRepo) DeleteDeal(ctx context.Context, ownerID, id string) (domain.Deal, error) {
	var removed domain.Deal
	err := r.s.update(func(doc *document) error {
		list := doc.Deals[ownerID]
		for i := range list {
			if list[i].ID == id {
				removed = list[i]
				doc.Deals[ownerID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
	return removed, err
}
