package repository

import (
	"context"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/storage"
	"gorm.io/gorm"
)

type SheetRepository struct {
	db *storage.Postgres
}

func NewSheetRepository(db *storage.Postgres) *SheetRepository {
	return &SheetRepository{db: db}
}

func (r *SheetRepository) Create(ctx context.Context, sheet *models.TrainingSheet) error {
	return r.db.DB.WithContext(ctx).Create(sheet).Error
}

func (r *SheetRepository) FindByID(ctx context.Context, id uint) (*models.TrainingSheet, error) {
	var sheet models.TrainingSheet
	err := preloadSheet(r.db.DB.WithContext(ctx)).
		Where("id = ?", id).
		First(&sheet).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &sheet, err
}

// Retrieves the published program by its URL slug
func (r *SheetRepository) FindBySlug(ctx context.Context, slug string) (*models.TrainingSheet, error) {
	var sheet models.TrainingSheet
	err := preloadSheet(r.db.DB.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&sheet).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &sheet, err
}

func (r *SheetRepository) List(ctx context.Context, limit, offset int) ([]models.TrainingSheet, int64, error) {
	var sheets []models.TrainingSheet
	var total int64

	if err := r.db.DB.WithContext(ctx).Model(&models.TrainingSheet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sheets).Error

	return sheets, total, err
}

func (r *SheetRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.TrainingSheet{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *SheetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.TrainingSheet{}).Error
}

func preloadSheet(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC")
		}).
		Preload("Days.ExerciseGroup").
		Preload("Days.ExerciseGroup.Category").
		Preload("Days.ExerciseGroup.Methods", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Days.ExerciseGroup.Methods.Configurations", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Days.ExerciseGroup.Methods.Configurations.Exercise").
		Preload("Days.ExerciseGroup.Methods.Configurations.Technique")
}
