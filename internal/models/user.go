package models

import "time"

// User is never rendered directly by handlers; see dto.UserView.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"password_hash"`
	Phone        string `gorm:"size:20" json:"phone"`
	TaxID        string `gorm:"size:20" json:"tax_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
