package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusConfirmed
}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no other status can follow s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus accepts the three lifecycle values, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.ErrInvalidStatus("invalid_status", "Invalid status.")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

// CanTransition allows confirmed -> cancelled|completed and any status to
// itself. Terminal statuses never change.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrInvalidStatus("invalid_status", "Invalid status.")
	}
	if from == to {
		return nil
	}
	if from == StatusConfirmed {
		return nil
	}
	return httperr.ErrInvalidStatus(
		"invalid_transition",
		"Appointment is "+string(from)+" and cannot become "+string(to)+".",
	)
}
