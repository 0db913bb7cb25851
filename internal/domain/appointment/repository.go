package appointment

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository is the persistence contract of the scheduling core.
// Lookups return store.ErrNotFound for unknown ids and CreateAppointment
// returns store.ErrSlotTaken when the slot already has a confirmed booking.
type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	ListBarbershopsByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Barbershop, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasConfirmedAppointment(
		ctx context.Context,
		barbershopID uint,
		date string,
		clock string,
	) (bool, error)

	ListConfirmedTimes(
		ctx context.Context,
		barbershopID uint,
		date string,
	) ([]string, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Queries (id ascending) --------
	ListAppointmentsByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}

// ListFilter narrows operator listings; zero values match everything.
type ListFilter struct {
	BarbershopID uint
	Date         string
}

// SlotLocker serializes work on one slot key across callers.
type SlotLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func SlotKey(barbershopID uint, date, clock string) string {
	return "slot:" + strconv.FormatUint(uint64(barbershopID), 10) + ":" + date + ":" + clock
}
