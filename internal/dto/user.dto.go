package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UserView is the public shape of a user; the password hash never leaves
// the server.
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		TaxID:     u.TaxID,
		CreatedAt: u.CreatedAt,
	}
}

type AuthDTO struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
