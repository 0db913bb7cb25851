package user

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository returns store.ErrNotFound for unknown users and
// store.ErrDuplicateEmail when an email is taken.
type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}
