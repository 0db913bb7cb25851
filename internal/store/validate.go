package store

import (
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Validate checks a whole document before it replaces a store's contents:
// unique ids per collection, unique emails, valid catalog entries, known
// statuses, well-formed dates and times, and one confirmed booking per slot.
func Validate(db Database) error {
	userIDs := make(map[uint]bool, len(db.Users))
	emails := make(map[string]bool, len(db.Users))
	for _, u := range db.Users {
		if u.ID == 0 || userIDs[u.ID] {
			return invalid("Users need unique ids.")
		}
		userIDs[u.ID] = true

		key := strings.ToLower(strings.TrimSpace(u.Email))
		if emails[key] {
			return invalid("Two users share one email.")
		}
		emails[key] = true
	}

	seen := make(map[uint]bool, len(db.Barbershops))
	for i := range db.Barbershops {
		shop := &db.Barbershops[i]
		if shop.ID == 0 || seen[shop.ID] {
			return invalid(fmt.Sprintf("Barbershop %q needs a unique id.", shop.Name))
		}
		seen[shop.ID] = true
		if err := barbershop.Validate(shop); err != nil {
			return err
		}
	}

	ids := make(map[uint]bool, len(db.Appointments))
	slots := make(map[string]bool, len(db.Appointments))
	for _, ap := range db.Appointments {
		if ap.ID == 0 || ids[ap.ID] {
			return invalid("Appointments need unique ids.")
		}
		ids[ap.ID] = true

		if !domain.Status(ap.Status).Valid() {
			return invalid(fmt.Sprintf("Appointment %d has an unknown status.", ap.ID))
		}
		if _, err := domain.ParseDate(ap.Date); err != nil {
			return err
		}
		if _, err := domain.ParseClock(ap.Time); err != nil {
			return err
		}

		if ap.Status == string(domain.StatusConfirmed) {
			key := domain.SlotKey(ap.BarbershopID, ap.Date, ap.Time)
			if slots[key] {
				return invalid("Two confirmed appointments share one slot.")
			}
			slots[key] = true
		}
	}
	return nil
}

func invalid(msg string) error {
	return httperr.ErrInvalidInput("invalid_snapshot", msg)
}
