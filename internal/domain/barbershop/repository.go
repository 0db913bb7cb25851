package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository returns store.ErrNotFound for unknown ids. Services are always
// loaded in catalog order.
type Repository interface {
	ListBarbershops(ctx context.Context) ([]models.Barbershop, error)
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	SearchBarbershops(ctx context.Context, term string) ([]models.Barbershop, error)
	CreateBarbershop(ctx context.Context, shop *models.Barbershop) error
	// UpdateBarbershop replaces every field of shop, services included.
	UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error
}
