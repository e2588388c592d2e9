package repository

import (
	"context"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/storage"
	"gorm.io/gorm"
)

type ExerciseRepository struct {
	db *storage.Postgres
}

func NewExerciseRepository(db *storage.Postgres) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	return r.db.DB.WithContext(ctx).Create(exercise).Error
}

func (r *ExerciseRepository) FindByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.DB.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&exercise).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &exercise, err
}

// Retrieves exercises with pagination and an optional name filter.
// The filter backs the autocomplete in the admin forms.
func (r *ExerciseRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Exercise, int64, error) {
	var exercises []models.Exercise
	var total int64

	query := r.db.DB.WithContext(ctx).Model(&models.Exercise{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&exercises).Error

	return exercises, total, err
}

func (r *ExerciseRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ExerciseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Exercise{}).Error
}

type CategoryRepository struct {
	db *storage.Postgres
}

func NewCategoryRepository(db *storage.Postgres) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.ExerciseCategory) error {
	return r.db.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.ExerciseCategory, error) {
	var category models.ExerciseCategory
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &category, err
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.ExerciseCategory, error) {
	var categories []models.ExerciseCategory
	err := r.db.DB.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error

	return categories, err
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.ExerciseCategory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ExerciseCategory{}).Error
}

type TechniqueRepository struct {
	db *storage.Postgres
}

func NewTechniqueRepository(db *storage.Postgres) *TechniqueRepository {
	return &TechniqueRepository{db: db}
}

func (r *TechniqueRepository) Create(ctx context.Context, technique *models.MethodTechnique) error {
	return r.db.DB.WithContext(ctx).Create(technique).Error
}

func (r *TechniqueRepository) FindByID(ctx context.Context, id uint) (*models.MethodTechnique, error) {
	var technique models.MethodTechnique
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&technique).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &technique, err
}

func (r *TechniqueRepository) List(ctx context.Context) ([]models.MethodTechnique, error) {
	var techniques []models.MethodTechnique
	err := r.db.DB.WithContext(ctx).
		Order("name ASC").
		Find(&techniques).Error

	return techniques, err
}

func (r *TechniqueRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.MethodTechnique{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *TechniqueRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.MethodTechnique{}).Error
}
