package service

import (
	"context"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/idx"
)

// How far out a deal is expected to close when the client gives no date.
const defaultCloseHorizon = 30 * 24 * time.Hour

type DealService struct {
	Store store.Store
}

func (s *DealService) List(ctx context.Context, ownerID string) ([]domain.Deal, error) {
	return s.Store.Deals().ListDeals(ctx, ownerID)
}

// Create builds a full record from the partial input. The creator always
// becomes AssignedTo; createdAt/updatedAt are set to the creation time.
func (s *DealService) Create(ctx context.Context, ownerID string, input domain.DealPatch) (domain.Deal, error) {
	now := time.Now().UTC()

	d := domain.Deal{
		Status:            domain.DealStatusProspecting,
		Priority:          domain.DealPriorityMedium,
		ExpectedCloseDate: now.Add(defaultCloseHorizon).Format(time.RFC3339),
		Source:            "website",
		Tags:              []string{},
	}
	d.Apply(input, now)

	d.ID = idx.New().String()
	d.CreatedAt = now
	d.AssignedTo = ownerID
	if d.Tags == nil {
		d.Tags = []string{}
	}

	if err := s.Store.Deals().CreateDeal(ctx, ownerID, d); err != nil {
		return domain.Deal{}, err
	}
	return d, nil
}

func (s *DealService) Update(ctx context.Context, ownerID, id string, patch domain.DealPatch) (domain.Deal, error) {
	return s.Store.Deals().UpdateDeal(ctx, ownerID, id, patch)
}

func (s *DealService) Delete(ctx context.Context, ownerID, id string) (domain.Deal, error) {
	return s.Store.Deals().DeleteDeal(ctx, ownerID, id)
}
