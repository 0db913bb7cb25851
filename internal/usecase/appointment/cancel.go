package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CancelAppointment is the owner's cancellation. Cancelling twice succeeds.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	requesterID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, appointmentErr(err)
	}

	wasCancelled := ap.Status == string(domain.StatusCancelled)
	if err := domain.Cancel(ap, requesterID); err != nil {
		return nil, err
	}
	if wasCancelled {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap.ID, domain.StatusCancelled); err != nil {
		return nil, appointmentErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       &requesterID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
