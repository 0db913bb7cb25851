package db

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestNewDB_SQLiteEnforcesConfirmedSlot(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: ":memory:"}
	gdb, err := NewDB(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ap := func(status string) *models.Appointment {
		return &models.Appointment{
			UserID: 1, BarbershopID: 1, Date: "2025-06-10", Time: "10:00", Status: status,
		}
	}

	require.NoError(t, gdb.Create(ap("confirmed")).Error)
	require.NoError(t, gdb.Create(ap("cancelled")).Error)

	err = gdb.Create(ap("confirmed")).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewDB_UnknownDriver(t *testing.T) {
	_, err := NewDB(&config.Config{StoreDriver: "mongo"}, slog.Default())
	assert.Error(t, err)
}
