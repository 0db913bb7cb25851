package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger stores events in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     encodeMetadata(ev.Metadata),
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}

// SlogSink writes events to a structured logger; used when no SQL store is
// configured.
type SlogSink struct {
	log *slog.Logger
}

func NewSlogSink(log *slog.Logger) *SlogSink {
	return &SlogSink{log: log}
}

func (s *SlogSink) Write(ctx context.Context, ev Event) error {
	attrs := []any{
		"action", ev.Action,
		"entity", ev.Entity,
		"barbershop_id", ev.BarbershopID,
	}
	if ev.UserID != nil {
		attrs = append(attrs, "user_id", *ev.UserID)
	}
	if ev.EntityID != nil {
		attrs = append(attrs, "entity_id", *ev.EntityID)
	}
	if meta := encodeMetadata(ev.Metadata); meta != "" {
		attrs = append(attrs, "metadata", meta)
	}

	s.log.InfoContext(ctx, "audit", attrs...)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
