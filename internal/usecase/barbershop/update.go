package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UpdateBarbershopInput holds a partial update; nil fields are kept.
type UpdateBarbershopInput struct {
	Name         *string
	Location     *string
	Price        *float64
	Emoji        *string
	Services     []models.Service
	WorkingHours *models.WorkingHours
}

type UpdateBarbershop struct {
	repo  barbershop.Repository
	audit *audit.Dispatcher
}

func NewUpdateBarbershop(
	repo barbershop.Repository,
	audit *audit.Dispatcher,
) *UpdateBarbershop {
	return &UpdateBarbershop{repo: repo, audit: audit}
}

func (uc *UpdateBarbershop) Execute(
	ctx context.Context,
	id uint,
	in UpdateBarbershopInput,
) (*models.Barbershop, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Name != nil {
		shop.Name = *in.Name
	}
	if in.Location != nil {
		shop.Location = *in.Location
	}
	if in.Price != nil {
		shop.Price = *in.Price
	}
	if in.Emoji != nil {
		shop.Emoji = *in.Emoji
	}
	if in.Services != nil {
		shop.Services = append([]models.Service(nil), in.Services...)
	}
	if in.WorkingHours != nil {
		shop.WorkingHours = *in.WorkingHours
	}

	shop.ID = id
	barbershop.Normalize(shop)
	if err := barbershop.Validate(shop); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBarbershop(ctx, shop); err != nil {
		return nil, notFound(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	return shop, nil
}
