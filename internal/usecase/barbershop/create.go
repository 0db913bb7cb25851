package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CreateBarbershopInput struct {
	Name         string
	Location     string
	Price        float64
	Emoji        string
	Services     []models.Service
	WorkingHours models.WorkingHours
}

type CreateBarbershop struct {
	repo  barbershop.Repository
	audit *audit.Dispatcher
}

func NewCreateBarbershop(
	repo barbershop.Repository,
	audit *audit.Dispatcher,
) *CreateBarbershop {
	return &CreateBarbershop{repo: repo, audit: audit}
}

// Execute adds a barbershop with no rating and no reviews yet.
func (uc *CreateBarbershop) Execute(
	ctx context.Context,
	in CreateBarbershopInput,
) (*models.Barbershop, error) {

	shop := &models.Barbershop{
		Name:         in.Name,
		Location:     in.Location,
		Price:        in.Price,
		Emoji:        in.Emoji,
		Services:     append([]models.Service(nil), in.Services...),
		WorkingHours: in.WorkingHours,
	}

	barbershop.Normalize(shop)
	if err := barbershop.Validate(shop); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBarbershop(ctx, shop); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "barbershop_created",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	return shop, nil
}
