// Package snapshot exports, imports and resets the whole store as one
// document.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type Store interface {
	Export(ctx context.Context) (store.Database, error)
	Import(ctx context.Context, db store.Database) error
}

type Service struct {
	store Store
	seed  func(ctx context.Context) error
}

// NewService builds the snapshot service; seed runs after Reset and may be
// nil.
func NewService(s Store, seed func(ctx context.Context) error) *Service {
	return &Service{store: s, seed: seed}
}

func (s *Service) Export(ctx context.Context) (store.Database, error) {
	db, err := s.store.Export(ctx)
	if err != nil {
		return store.Database{}, fmt.Errorf("export: %w", err)
	}
	return db, nil
}

// Import replaces every collection with db after checking it.
func (s *Service) Import(ctx context.Context, db store.Database) error {
	if err := store.Validate(db); err != nil {
		return err
	}

	err := s.store.Import(ctx, db)
	switch {
	case errors.Is(err, store.ErrSlotTaken):
		return invalid("Two confirmed appointments share one slot.")
	case errors.Is(err, store.ErrDuplicateEmail):
		return invalid("Two users share one email.")
	case err != nil:
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// Reset empties the store and reseeds the demo catalog.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Import(ctx, store.Database{}); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if s.seed == nil {
		return nil
	}
	return s.seed(ctx)
}

func invalid(msg string) error {
	return httperr.ErrInvalidInput("invalid_snapshot", msg)
}
