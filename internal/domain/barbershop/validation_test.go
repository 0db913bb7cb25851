package barbershop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func validShop() *models.Barbershop {
	return &models.Barbershop{
		ID:       3,
		Name:     "  Barbeiro do João ",
		Location: "Vila Nova, 0.8km",
		Price:    40,
		Services: []models.Service{
			{ID: 1, Name: "Corte Simples", Price: 40, DurationMin: 40},
			{ID: 2, Name: "Barba", Price: 30, DurationMin: 25},
		},
		WorkingHours: models.WorkingHours{Start: "09:00", End: "19:00", IntervalMin: 60},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validShop()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Barbershop)
	}{
		{"empty name", func(s *models.Barbershop) { s.Name = " " }},
		{"negative price", func(s *models.Barbershop) { s.Price = -1 }},
		{"no services", func(s *models.Barbershop) { s.Services = nil }},
		{"duplicate service id", func(s *models.Barbershop) { s.Services[1].ID = 1 }},
		{"zero service id", func(s *models.Barbershop) { s.Services[0].ID = 0 }},
		{"zero duration", func(s *models.Barbershop) { s.Services[0].DurationMin = 0 }},
		{"negative service price", func(s *models.Barbershop) { s.Services[0].Price = -5 }},
		{"bad hours", func(s *models.Barbershop) { s.WorkingHours.End = "08:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := validShop()
			tt.mutate(shop)
			err := Validate(shop)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidInput))
		})
	}
}

func TestNormalize(t *testing.T) {
	shop := validShop()
	Normalize(shop)

	assert.Equal(t, "Barbeiro do João", shop.Name)
	for i, s := range shop.Services {
		assert.Equal(t, uint(3), s.BarbershopID)
		assert.Equal(t, i, s.Position)
	}
}

func TestMatches(t *testing.T) {
	shop := validShop()
	assert.True(t, Matches(shop, "joão"))
	assert.True(t, Matches(shop, "VILA"))
	assert.True(t, Matches(shop, ""))
	assert.False(t, Matches(shop, "premium"))
}
