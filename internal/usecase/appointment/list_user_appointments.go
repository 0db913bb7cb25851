package appointment

import (
	"context"
	"slices"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListUserAppointments builds a user's views: everything, upcoming and
// history. All three keep store order for equal dates.
type ListUserAppointments struct {
	repo domain.Repository
}

func NewListUserAppointments(repo domain.Repository) *ListUserAppointments {
	return &ListUserAppointments{repo: repo}
}

func (uc *ListUserAppointments) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentView, error) {

	aps, err := uc.repo.ListAppointmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return enrich(ctx, uc.repo, aps)
}

// Upcoming returns confirmed appointments dated asOf or later, soonest
// first. Time of day is ignored.
func (uc *ListUserAppointments) Upcoming(
	ctx context.Context,
	userID uint,
	asOf string,
) ([]dto.AppointmentView, error) {

	if _, err := domain.ParseDate(asOf); err != nil {
		return nil, err
	}

	all, err := uc.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(all))
	for _, v := range all {
		if domain.IsConfirmed(&v.Appointment) && v.Date >= asOf {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b dto.AppointmentView) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out, nil
}

// History returns appointments dated before asOf plus every appointment
// that is no longer confirmed, latest first. A cancelled future booking
// lands here, never in Upcoming.
func (uc *ListUserAppointments) History(
	ctx context.Context,
	userID uint,
	asOf string,
) ([]dto.AppointmentView, error) {

	if _, err := domain.ParseDate(asOf); err != nil {
		return nil, err
	}

	all, err := uc.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(all))
	for _, v := range all {
		if v.Date < asOf || !domain.IsConfirmed(&v.Appointment) {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b dto.AppointmentView) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out, nil
}

// enrich joins barbershop name and location; a missing barbershop gets a
// placeholder instead of failing the listing.
func enrich(
	ctx context.Context,
	repo domain.Repository,
	aps []models.Appointment,
) ([]dto.AppointmentView, error) {

	ids := make([]uint, 0, len(aps))
	seen := make(map[uint]bool, len(aps))
	for _, ap := range aps {
		if !seen[ap.BarbershopID] {
			seen[ap.BarbershopID] = true
			ids = append(ids, ap.BarbershopID)
		}
	}

	shops, err := repo.ListBarbershopsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Barbershop, len(shops))
	for i := range shops {
		byID[shops[i].ID] = &shops[i]
	}

	out := make([]dto.AppointmentView, 0, len(aps))
	for _, ap := range aps {
		v := dto.AppointmentView{
			Appointment:    ap,
			BarbershopName: dto.UnknownBarbershop,
		}
		if shop, ok := byID[ap.BarbershopID]; ok {
			v.BarbershopName = shop.Name
			v.BarbershopLocation = shop.Location
		}
		out = append(out, v)
	}
	return out, nil
}
