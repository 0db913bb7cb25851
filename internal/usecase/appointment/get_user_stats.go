package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type GetUserStats struct {
	repo domain.Repository
}

func NewGetUserStats(repo domain.Repository) *GetUserStats {
	return &GetUserStats{repo: repo}
}

// Execute counts a user's appointments by status. TotalSpent only sums
// completed appointments.
func (uc *GetUserStats) Execute(
	ctx context.Context,
	userID uint,
) (dto.AppointmentStatsDTO, error) {

	aps, err := uc.repo.ListAppointmentsByUser(ctx, userID)
	if err != nil {
		return dto.AppointmentStatsDTO{}, err
	}

	stats := dto.AppointmentStatsDTO{Total: len(aps)}
	for _, ap := range aps {
		switch domain.Status(ap.Status) {
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCompleted:
			stats.Completed++
			stats.TotalSpent += ap.Price
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}
