// Package seed holds the demo catalog a fresh store starts with.
package seed

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var demoHours = models.WorkingHours{Start: "09:00", End: "19:00", IntervalMin: 60}

func Barbershops() []models.Barbershop {
	return []models.Barbershop{
		{
			Name:     "Barber Shop Premium",
			Location: "Centro, 1.2km",
			Rating:   4.9,
			Reviews:  234,
			Price:    45,
			Emoji:    "💈",
			Services: []models.Service{
				{ID: 1, Name: "Corte Tradicional", Price: 45, DurationMin: 45},
				{ID: 2, Name: "Barba", Price: 35, DurationMin: 30},
				{ID: 3, Name: "Corte + Barba", Price: 70, DurationMin: 75},
				{ID: 4, Name: "Hidratação", Price: 25, DurationMin: 20},
			},
			WorkingHours: demoHours,
		},
		{
			Name:     "Estilo & Classe",
			Location: "Bairro Alto, 2.5km",
			Rating:   4.8,
			Reviews:  189,
			Price:    50,
			Emoji:    "✂️",
			Services: []models.Service{
				{ID: 1, Name: "Corte Moderno", Price: 50, DurationMin: 45},
				{ID: 2, Name: "Degradê", Price: 55, DurationMin: 50},
				{ID: 3, Name: "Barba Completa", Price: 40, DurationMin: 35},
				{ID: 4, Name: "Combo Premium", Price: 85, DurationMin: 90},
			},
			WorkingHours: demoHours,
		},
		{
			Name:     "Barbeiro do João",
			Location: "Vila Nova, 0.8km",
			Rating:   4.7,
			Reviews:  156,
			Price:    40,
			Emoji:    "🪒",
			Services: []models.Service{
				{ID: 1, Name: "Corte Simples", Price: 40, DurationMin: 40},
				{ID: 2, Name: "Corte + Acabamento", Price: 50, DurationMin: 50},
				{ID: 3, Name: "Barba", Price: 30, DurationMin: 25},
				{ID: 4, Name: "Pacote Completo", Price: 65, DurationMin: 70},
			},
			WorkingHours: demoHours,
		},
	}
}

// EnsureCatalog writes the demo barbershops when the catalog is empty and
// reports how many it created.
func EnsureCatalog(ctx context.Context, repo barbershop.Repository) (int, error) {
	existing, err := repo.ListBarbershops(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	shops := Barbershops()
	for i := range shops {
		if err := repo.CreateBarbershop(ctx, &shops[i]); err != nil {
			return i, err
		}
	}
	return len(shops), nil
}
