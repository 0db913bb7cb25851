package store

import "github.com/BruksfildServices01/barber-booking/internal/models"

// Database is the whole-document view of the store: every collection at
// once, appointments in insertion order.
type Database struct {
	Users        []models.User        `json:"users"`
	Appointments []models.Appointment `json:"appointments"`
	Barbershops  []models.Barbershop  `json:"barbershops"`
}
