package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

// ListAppointments is the operator view over every user, optionally
// narrowed to one barbershop and/or one day.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.AppointmentView, error) {

	if filter.Date != "" {
		if _, err := domain.ParseDate(filter.Date); err != nil {
			return nil, err
		}
	}

	if filter.BarbershopID != 0 {
		if _, err := uc.repo.GetBarbershopByID(ctx, filter.BarbershopID); err != nil {
			return nil, barbershopErr(err)
		}
	}

	aps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return enrich(ctx, uc.repo, aps)
}
