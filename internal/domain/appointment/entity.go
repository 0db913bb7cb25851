package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel marks ap cancelled on behalf of requesterID. Cancelling an already
// cancelled appointment is a no-op.
func Cancel(ap *models.Appointment, requesterID uint) error {
	if ap.UserID != requesterID {
		return httperr.ErrForbidden("You are not allowed to cancel this appointment.")
	}
	return ChangeStatus(ap, StatusCancelled)
}

func ChangeStatus(ap *models.Appointment, to Status) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}

func IsConfirmed(ap *models.Appointment) bool {
	return Status(ap.Status) == StatusConfirmed
}
