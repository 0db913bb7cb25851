package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// DeleteAppointment removes the record for good. Use CancelAppointment to
// keep history.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return appointmentErr(err)
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return appointmentErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_deleted",
		Entity:       "appointment",
		EntityID:     &appointmentID,
		Metadata: map[string]string{
			"date":   ap.Date,
			"time":   ap.Time,
			"status": ap.Status,
		},
	})

	return nil
}
