package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func servicesInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func loadBarbershop(ctx context.Context, db *gorm.DB, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := db.WithContext(ctx).
		Preload("Services", servicesInOrder).
		First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) ListBarbershops(
	ctx context.Context,
) ([]models.Barbershop, error) {
	return r.SearchBarbershops(ctx, "")
}

func (r *BarbershopGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {
	return loadBarbershop(ctx, r.db, id)
}

func (r *BarbershopGormRepository) SearchBarbershops(
	ctx context.Context,
	term string,
) ([]models.Barbershop, error) {

	q := r.db.WithContext(ctx).
		Preload("Services", servicesInOrder).
		Order("id ASC")

	if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", like, like)
	}

	var shops []models.Barbershop
	if err := q.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *BarbershopGormRepository) CreateBarbershop(
	ctx context.Context,
	shop *models.Barbershop,
) error {
	for i := range shop.Services {
		shop.Services[i].Position = i
	}
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *BarbershopGormRepository) UpdateBarbershop(
	ctx context.Context,
	shop *models.Barbershop,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Barbershop
		if err := tx.Select("id", "created_at").First(&existing, shop.ID).Error; err != nil {
			return notFound(err)
		}
		shop.CreatedAt = existing.CreatedAt

		if err := tx.Omit("Services").Save(shop).Error; err != nil {
			return err
		}

		if err := tx.Where("barbershop_id = ?", shop.ID).
			Delete(&models.Service{}).Error; err != nil {
			return err
		}

		if len(shop.Services) == 0 {
			return nil
		}
		for i := range shop.Services {
			shop.Services[i].BarbershopID = shop.ID
			shop.Services[i].Position = i
		}
		return tx.Create(&shop.Services).Error
	})
}

// Compile-time check
var _ barbershop.Repository = (*BarbershopGormRepository)(nil)

