package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// CreateAppointmentInput carries the booking request. ServiceName and Price
// are stored as given; the caller sources them from the catalog.
type CreateAppointmentInput struct {
	UserID       uint
	BarbershopID uint

	ServiceID   uint
	ServiceName string
	Price       float64

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker domain.SlotLocker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker domain.SlotLocker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Date / time
	// --------------------------------------------------
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock(in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Barbershop and its slot grid
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, barbershopErr(err)
	}

	if !domain.IsSlotTime(shop.WorkingHours, in.Time) {
		return nil, httperr.ErrInvalidInput(
			"outside_working_hours",
			"The requested time is not one of the barbershop's slots.",
		)
	}

	// --------------------------------------------------
	// 3. Serialize check-then-insert on the slot
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, domain.SlotKey(shop.ID, in.Date, in.Time))
	if err != nil {
		return nil, err
	}
	defer unlock()

	taken, err := uc.repo.HasConfirmedAppointment(ctx, shop.ID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errSlotTaken()
	}

	// --------------------------------------------------
	// 4. Insert
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:       in.UserID,
		BarbershopID: shop.ID,
		ServiceID:    in.ServiceID,
		ServiceName:  in.ServiceName,
		Date:         in.Date,
		Time:         in.Time,
		Price:        in.Price,
		Status:       string(domain.InitialStatus()),
		CreatedAt:    uc.now().UTC(),
	}

	// the store enforces the same rule if another instance won the race
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, appointmentErr(err)
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &in.UserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"date": ap.Date,
			"time": ap.Time,
		},
	})

	return ap, nil
}
