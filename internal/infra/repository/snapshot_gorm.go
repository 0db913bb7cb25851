package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

// SnapshotGormRepository reads and replaces every table in one transaction.
type SnapshotGormRepository struct {
	db *gorm.DB
}

func NewSnapshotGormRepository(db *gorm.DB) *SnapshotGormRepository {
	return &SnapshotGormRepository{db: db}
}

func (r *SnapshotGormRepository) Export(ctx context.Context) (store.Database, error) {
	var out store.Database

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&out.Users).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&out.Appointments).Error; err != nil {
			return err
		}
		return tx.Preload("Services", servicesInOrder).
			Order("id ASC").
			Find(&out.Barbershops).Error
	})
	if err != nil {
		return store.Database{}, err
	}
	return out, nil
}

func (r *SnapshotGormRepository) Import(ctx context.Context, db store.Database) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.Appointment{},
			&models.Service{},
			&models.Barbershop{},
			&models.User{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}

		for i := range db.Barbershops {
			for j := range db.Barbershops[i].Services {
				db.Barbershops[i].Services[j].Position = j
			}
		}

		if len(db.Users) > 0 {
			if err := tx.Create(&db.Users).Error; err != nil {
				if isUniqueViolation(err) {
					return store.ErrDuplicateEmail
				}
				return err
			}
		}
		if len(db.Barbershops) > 0 {
			if err := tx.Create(&db.Barbershops).Error; err != nil {
				return err
			}
		}
		if len(db.Appointments) > 0 {
			if err := tx.Create(&db.Appointments).Error; err != nil {
				if isUniqueViolation(err) {
					return store.ErrSlotTaken
				}
				return err
			}
		}

		return resetSequences(tx)
	})
}

// resetSequences realigns postgres serial columns after rows were inserted
// with explicit ids. sqlite derives the next rowid from MAX(id) on its own.
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "appointments", "barbershops"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %[1]s",
			table,
		)
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
