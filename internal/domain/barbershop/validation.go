package barbershop

import (
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Validate checks the catalog invariants of a barbershop.
func Validate(shop *models.Barbershop) error {
	if strings.TrimSpace(shop.Name) == "" {
		return httperr.ErrInvalidInput("invalid_name", "Barbershop name is required.")
	}
	if shop.Price < 0 {
		return httperr.ErrInvalidInput("invalid_price", "Price must not be negative.")
	}
	if err := ValidateServices(shop.Services); err != nil {
		return err
	}
	return domain.ValidateWorkingHours(shop.WorkingHours)
}

func ValidateServices(services []models.Service) error {
	if len(services) == 0 {
		return httperr.ErrInvalidInput("invalid_services", "At least one service is required.")
	}

	seen := make(map[uint]struct{}, len(services))
	for _, s := range services {
		if s.ID == 0 {
			return httperr.ErrInvalidInput("invalid_services", "Service id is required.")
		}
		if _, dup := seen[s.ID]; dup {
			return httperr.ErrInvalidInput("invalid_services", "Service ids must be unique.")
		}
		seen[s.ID] = struct{}{}

		if strings.TrimSpace(s.Name) == "" {
			return httperr.ErrInvalidInput("invalid_services", "Service name is required.")
		}
		if s.Price < 0 {
			return httperr.ErrInvalidInput("invalid_services", "Service price must not be negative.")
		}
		if s.DurationMin <= 0 {
			return httperr.ErrInvalidInput("invalid_services", "Service duration must be positive.")
		}
	}
	return nil
}

// Normalize binds services to shop and records their order.
func Normalize(shop *models.Barbershop) {
	shop.Name = strings.TrimSpace(shop.Name)
	shop.Location = strings.TrimSpace(shop.Location)
	for i := range shop.Services {
		shop.Services[i].BarbershopID = shop.ID
		shop.Services[i].Position = i
	}
}

// Matches is the search predicate: case-insensitive substring of name or
// location.
func Matches(shop *models.Barbershop, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(shop.Name), term) ||
		strings.Contains(strings.ToLower(shop.Location), term)
}
