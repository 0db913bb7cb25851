package barbershop

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("barbershop_not_found", "Barbershop not found.")
	}
	return err
}
