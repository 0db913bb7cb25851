package dto

import "github.com/BruksfildServices01/barber-booking/internal/models"

// UnknownBarbershop names appointments whose barbershop no longer exists.
const UnknownBarbershop = "Unknown"

// AppointmentView is an appointment joined with its barbershop.
type AppointmentView struct {
	models.Appointment
	BarbershopName     string `json:"barbershop_name"`
	BarbershopLocation string `json:"barbershop_location"`
}

type AppointmentStatsDTO struct {
	Total      int     `json:"total"`
	Confirmed  int     `json:"confirmed"`
	Completed  int     `json:"completed"`
	Cancelled  int     `json:"cancelled"`
	TotalSpent float64 `json:"total_spent"`
}
