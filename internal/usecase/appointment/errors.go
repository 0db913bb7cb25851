package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

func barbershopErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("barbershop_not_found", "Barbershop not found.")
	}
	return err
}

func appointmentErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	case errors.Is(err, store.ErrSlotTaken):
		return errSlotTaken()
	}
	return err
}

func errSlotTaken() error {
	return httperr.ErrSlotUnavailable("This time slot is already booked.")
}
