package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UpdateStatus is the operator surface: no ownership check.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, appointmentErr(err)
	}

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.ChangeStatus(ap, to); err != nil {
		return nil, err
	}
	if from == ap.Status {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap.ID, to); err != nil {
		return nil, appointmentErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_" + string(to),
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]string{"from": from, "to": ap.Status},
	})

	return ap, nil
}
