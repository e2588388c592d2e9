package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
)

// CatalogService owns the admin-managed building blocks: exercises,
// categories and method techniques.
type CatalogService struct {
	exercises  *repository.ExerciseRepository
	categories *repository.CategoryRepository
	techniques *repository.TechniqueRepository
}

func NewCatalogService(
	exercises *repository.ExerciseRepository,
	categories *repository.CategoryRepository,
	techniques *repository.TechniqueRepository,
) *CatalogService {
	return &CatalogService{
		exercises:  exercises,
		categories: categories,
		techniques: techniques,
	}
}

func (s *CatalogService) CreateExercise(ctx context.Context, exercise *models.Exercise) error {
	if strings.TrimSpace(exercise.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}

	if exercise.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *exercise.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category %d does not exist", ErrInvalidPayload, *exercise.CategoryID)
		}
	}

	return s.exercises.Create(ctx, exercise)
}

func (s *CatalogService) GetExercise(ctx context.Context, id uint) (*models.Exercise, error) {
	return s.exercises.FindByID(ctx, id)
}

func (s *CatalogService) ListExercises(ctx context.Context, search string, limit, offset int) ([]models.Exercise, int64, error) {
	return s.exercises.List(ctx, search, limit, offset)
}

func (s *CatalogService) UpdateExercise(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.exercises.Update(ctx, id, updates)
}

func (s *CatalogService) DeleteExercise(ctx context.Context, id uint) error {
	return s.exercises.Delete(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.ExerciseCategory) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}

	return s.categories.Create(ctx, category)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.ExerciseCategory, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.categories.Update(ctx, id, updates)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) CreateTechnique(ctx context.Context, technique *models.MethodTechnique) error {
	if strings.TrimSpace(technique.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}

	return s.techniques.Create(ctx, technique)
}

func (s *CatalogService) ListTechniques(ctx context.Context) ([]models.MethodTechnique, error) {
	return s.techniques.List(ctx)
}

func (s *CatalogService) UpdateTechnique(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.techniques.Update(ctx, id, updates)
}

func (s *CatalogService) DeleteTechnique(ctx context.Context, id uint) error {
	return s.techniques.Delete(ctx, id)
}
