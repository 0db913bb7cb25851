package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID       uint `gorm:"not null;index" json:"user_id"`
	BarbershopID uint `gorm:"not null;index:idx_appointments_shop_day,priority:1" json:"barbershop_id"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `gorm:"size:100" json:"service_name"`

	// Date is YYYY-MM-DD and Time is HH:MM, both in the barbershop's wall clock.
	Date string `gorm:"column:slot_date;size:10;not null;index:idx_appointments_shop_day,priority:2" json:"date"`
	Time string `gorm:"column:slot_time;size:5;not null" json:"time"`

	// Price is captured at booking time.
	Price float64 `json:"price"`

	Status string `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
