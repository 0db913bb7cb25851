package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists every slot of the barbershop's day with its availability.
// An unknown barbershop is a NotFound error rather than an empty day.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, barbershopErr(err)
	}

	times, err := domain.SlotTimes(shop.WorkingHours)
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.repo.ListConfirmedTimes(ctx, shop.ID, in.Date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(confirmed))
	for _, t := range confirmed {
		taken[t] = true
	}

	return domain.BuildSlots(times, taken), nil
}

type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

// Execute reports whether no confirmed appointment holds the slot.
func (uc *CheckSlot) Execute(
	ctx context.Context,
	barbershopID uint,
	date string,
	clock string,
) (bool, error) {

	if _, err := domain.ParseDate(date); err != nil {
		return false, err
	}
	if _, err := domain.ParseClock(clock); err != nil {
		return false, err
	}

	taken, err := uc.repo.HasConfirmedAppointment(ctx, barbershopID, date, clock)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
