package repository

import (
	"context"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/storage"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *storage.Postgres
}

func NewGroupRepository(db *storage.Postgres) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *models.ExerciseGroup) error {
	return r.db.DB.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint) (*models.ExerciseGroup, error) {
	var group models.ExerciseGroup
	err := r.db.DB.WithContext(ctx).
		Preload("Category").
		Preload("Methods", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Methods.Configurations", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Methods.Configurations.Exercise").
		Preload("Methods.Configurations.Technique").
		Where("id = ?", id).
		First(&group).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &group, err
}

// FindByNameAndCategory resolves the (name, category_id) dedup key.
// A nil category only ever matches rows whose category_id is NULL.
func FindByNameAndCategory(tx *gorm.DB, name string, categoryID *uint) (*models.ExerciseGroup, error) {
	var group models.ExerciseGroup

	query := tx.Where("name = ?", name)
	if categoryID == nil {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", *categoryID)
	}

	err := query.First(&group).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &group, err
}

func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]models.ExerciseGroup, int64, error) {
	var groups []models.ExerciseGroup
	var total int64

	if err := r.db.DB.WithContext(ctx).Model(&models.ExerciseGroup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.DB.WithContext(ctx).
		Preload("Category").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error

	return groups, total, err
}

func (r *GroupRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.ExerciseGroup{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ExerciseGroup{}).Error
}
