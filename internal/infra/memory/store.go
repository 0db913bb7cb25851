// Package memory is a document store that keeps every collection in one
// in-process value, optionally mirrored to a JSON file after each write.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type Store struct {
	mu   sync.RWMutex
	db   store.Database
	path string
	now  func() time.Time

	nextUserID        uint
	nextAppointmentID uint
	nextBarbershopID  uint
}

func New() *Store {
	return &Store{
		now:               time.Now,
		nextUserID:        1,
		nextAppointmentID: 1,
		nextBarbershopID:  1,
	}
}

// Open loads path when it exists and persists every later write to it.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var db store.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := store.Validate(db); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	normalize(&db)
	s.replace(db)
	return s, nil
}

// --------------------------------------------------
// Snapshot
// --------------------------------------------------

func (s *Store) Export(ctx context.Context) (store.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDatabase(s.db), nil
}

func (s *Store) Import(ctx context.Context, db store.Database) error {
	if err := checkConfirmedUnique(db.Appointments); err != nil {
		return err
	}
	if err := checkEmailsUnique(db.Users); err != nil {
		return err
	}

	next := copyDatabase(db)
	normalize(&next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(next); err != nil {
		return err
	}
	s.replace(next)
	return nil
}

// normalize binds services to their barbershop and records their order.
func normalize(db *store.Database) {
	for i := range db.Barbershops {
		b := &db.Barbershops[i]
		for j := range b.Services {
			b.Services[j].BarbershopID = b.ID
			b.Services[j].Position = j
		}
	}
}

func (s *Store) replace(db store.Database) {
	s.db = db
	s.nextUserID, s.nextAppointmentID, s.nextBarbershopID = 1, 1, 1
	for _, u := range db.Users {
		s.nextUserID = max(s.nextUserID, u.ID+1)
	}
	for _, a := range db.Appointments {
		s.nextAppointmentID = max(s.nextAppointmentID, a.ID+1)
	}
	for _, b := range db.Barbershops {
		s.nextBarbershopID = max(s.nextBarbershopID, b.ID+1)
	}
}

// commit writes next and only then makes it current; a failed write
// leaves the store unchanged. Callers hold the write lock.
func (s *Store) commit(next store.Database) error {
	if err := s.write(next); err != nil {
		return err
	}
	s.db = next
	return nil
}

func (s *Store) write(db store.Database) error {
	if s.path == "" {
		return nil
	}

	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".barber-db-*")
	if err != nil {
		return fmt.Errorf("persist database: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("persist database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist database: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("persist database: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (s *Store) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.barbershopIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	shop := copyBarbershop(s.db.Barbershops[i])
	return &shop, nil
}

func (s *Store) ListBarbershopsByIDs(ctx context.Context, ids []uint) ([]models.Barbershop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]models.Barbershop, 0, len(ids))
	for _, b := range s.db.Barbershops {
		if _, ok := want[b.ID]; ok {
			out = append(out, copyBarbershop(b))
		}
	}
	return out, nil
}

func (s *Store) ListBarbershops(ctx context.Context) ([]models.Barbershop, error) {
	return s.SearchBarbershops(ctx, "")
}

func (s *Store) SearchBarbershops(ctx context.Context, term string) ([]models.Barbershop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Barbershop, 0, len(s.db.Barbershops))
	for i := range s.db.Barbershops {
		if barbershop.Matches(&s.db.Barbershops[i], term) {
			out = append(out, copyBarbershop(s.db.Barbershops[i]))
		}
	}
	return out, nil
}

func (s *Store) CreateBarbershop(ctx context.Context, shop *models.Barbershop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	rec := copyBarbershop(*shop)
	rec.ID = s.nextBarbershopID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	for i := range rec.Services {
		rec.Services[i].BarbershopID = rec.ID
	}

	next := s.db
	next.Barbershops = append(slices.Clip(s.db.Barbershops), rec)
	if err := s.commit(next); err != nil {
		return err
	}

	s.nextBarbershopID++
	*shop = copyBarbershop(rec)
	return nil
}

func (s *Store) UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.barbershopIndex(shop.ID)
	if i < 0 {
		return store.ErrNotFound
	}

	rec := copyBarbershop(*shop)
	rec.CreatedAt = s.db.Barbershops[i].CreatedAt
	rec.UpdatedAt = s.now().UTC()
	for j := range rec.Services {
		rec.Services[j].BarbershopID = rec.ID
	}

	next := s.db
	next.Barbershops = slices.Clone(s.db.Barbershops)
	next.Barbershops[i] = rec
	if err := s.commit(next); err != nil {
		return err
	}

	*shop = copyBarbershop(rec)
	return nil
}

func (s *Store) barbershopIndex(id uint) int {
	for i := range s.db.Barbershops {
		if s.db.Barbershops[i].ID == id {
			return i
		}
	}
	return -1
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *Store) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IsConfirmed(ap) && s.confirmedIndex(ap.BarbershopID, ap.Date, ap.Time) >= 0 {
		return store.ErrSlotTaken
	}

	now := s.now().UTC()
	rec := *ap
	rec.ID = s.nextAppointmentID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	next := s.db
	next.Appointments = append(slices.Clip(s.db.Appointments), rec)
	if err := s.commit(next); err != nil {
		return err
	}

	s.nextAppointmentID++
	*ap = rec
	return nil
}

func (s *Store) HasConfirmedAppointment(ctx context.Context, barbershopID uint, date, clock string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.confirmedIndex(barbershopID, date, clock) >= 0, nil
}

func (s *Store) ListConfirmedTimes(ctx context.Context, barbershopID uint, date string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var times []string
	for _, a := range s.db.Appointments {
		if a.BarbershopID == barbershopID && a.Date == date && domain.IsConfirmed(&a) {
			times = append(times, a.Time)
		}
	}
	return times, nil
}

func (s *Store) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.appointmentIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	ap := s.db.Appointments[i]
	return &ap, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, id uint, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.appointmentIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}

	rec := s.db.Appointments[i]
	if status == domain.StatusConfirmed && !domain.IsConfirmed(&rec) {
		if s.confirmedIndex(rec.BarbershopID, rec.Date, rec.Time) >= 0 {
			return store.ErrSlotTaken
		}
	}

	rec.Status = string(status)
	rec.UpdatedAt = s.now().UTC()

	next := s.db
	next.Appointments = slices.Clone(s.db.Appointments)
	next.Appointments[i] = rec
	return s.commit(next)
}

func (s *Store) DeleteAppointment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.appointmentIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	next := s.db
	next.Appointments = slices.Delete(slices.Clone(s.db.Appointments), i, i+1)
	return s.commit(next)
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, a := range s.db.Appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, a := range s.db.Appointments {
		if filter.BarbershopID != 0 && a.BarbershopID != filter.BarbershopID {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) appointmentIndex(id uint) int {
	for i := range s.db.Appointments {
		if s.db.Appointments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) confirmedIndex(barbershopID uint, date, clock string) int {
	for i := range s.db.Appointments {
		a := &s.db.Appointments[i]
		if a.BarbershopID == barbershopID && a.Date == date && a.Time == clock && domain.IsConfirmed(a) {
			return i
		}
	}
	return -1
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndexByEmail(u.Email) >= 0 {
		return store.ErrDuplicateEmail
	}

	now := s.now().UTC()
	rec := *u
	rec.ID = s.nextUserID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	next := s.db
	next.Users = append(slices.Clip(s.db.Users), rec)
	if err := s.commit(next); err != nil {
		return err
	}

	s.nextUserID++
	*u = rec
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.db.Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.userIndexByEmail(email)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u := s.db.Users[i]
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.db.Users {
		if s.db.Users[i].ID != u.ID {
			continue
		}
		if j := s.userIndexByEmail(u.Email); j >= 0 && j != i {
			return store.ErrDuplicateEmail
		}
		rec := *u
		rec.CreatedAt = s.db.Users[i].CreatedAt
		rec.UpdatedAt = s.now().UTC()

		next := s.db
		next.Users = slices.Clone(s.db.Users)
		next.Users[i] = rec
		if err := s.commit(next); err != nil {
			return err
		}
		*u = rec
		return nil
	}
	return store.ErrNotFound
}

func (s *Store) userIndexByEmail(email string) int {
	for i := range s.db.Users {
		if strings.EqualFold(s.db.Users[i].Email, email) {
			return i
		}
	}
	return -1
}

// --------------------------------------------------
// Copies
// --------------------------------------------------

func copyBarbershop(b models.Barbershop) models.Barbershop {
	if b.Services != nil {
		b.Services = append([]models.Service(nil), b.Services...)
	}
	return b
}

func copyDatabase(db store.Database) store.Database {
	out := store.Database{
		Users:        append([]models.User{}, db.Users...),
		Appointments: append([]models.Appointment{}, db.Appointments...),
		Barbershops:  make([]models.Barbershop, 0, len(db.Barbershops)),
	}
	for _, b := range db.Barbershops {
		out.Barbershops = append(out.Barbershops, copyBarbershop(b))
	}
	return out
}

func checkConfirmedUnique(aps []models.Appointment) error {
	seen := make(map[string]struct{}, len(aps))
	for i := range aps {
		if !domain.IsConfirmed(&aps[i]) {
			continue
		}
		key := domain.SlotKey(aps[i].BarbershopID, aps[i].Date, aps[i].Time)
		if _, dup := seen[key]; dup {
			return store.ErrSlotTaken
		}
		seen[key] = struct{}{}
	}
	return nil
}

func checkEmailsUnique(users []models.User) error {
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		key := strings.ToLower(u.Email)
		if _, dup := seen[key]; dup {
			return store.ErrDuplicateEmail
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Compile-time checks
var (
	_ domain.Repository     = (*Store)(nil)
	_ barbershop.Repository = (*Store)(nil)
	_ user.Repository       = (*Store)(nil)
)
