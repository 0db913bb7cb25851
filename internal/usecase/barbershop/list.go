package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListBarbershops struct {
	repo barbershop.Repository
}

func NewListBarbershops(repo barbershop.Repository) *ListBarbershops {
	return &ListBarbershops{repo: repo}
}

// Execute returns every barbershop, or those whose name or location
// contains query when it is not blank.
func (uc *ListBarbershops) Execute(
	ctx context.Context,
	query string,
) ([]models.Barbershop, error) {
	if query == "" {
		return uc.repo.ListBarbershops(ctx)
	}
	return uc.repo.SearchBarbershops(ctx, query)
}

type GetBarbershop struct {
	repo barbershop.Repository
}

func NewGetBarbershop(repo barbershop.Repository) *GetBarbershop {
	return &GetBarbershop{repo: repo}
}

func (uc *GetBarbershop) Execute(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {
	shop, err := uc.repo.GetBarbershopByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return shop, nil
}
