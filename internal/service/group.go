package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
)

type GroupService struct {
	repo *repository.GroupRepository
}

func NewGroupService(repo *repository.GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

type GroupInput struct {
	Name       string                `json:"name" binding:"required"`
	CategoryID *uint                 `json:"category_id"`
	Methods    []CompleteMethodInput `json:"methods" binding:"dive"`
}

// Create persists a standalone group with its nested methods and
// configurations. gorm cascades the association inserts in one statement
// batch, so a half-created group is never visible.
func (s *GroupService) Create(ctx context.Context, input *GroupInput) (*models.ExerciseGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}

	group := &models.ExerciseGroup{
		Name:       input.Name,
		CategoryID: input.CategoryID,
	}

	for _, methodInput := range input.Methods {
		method := models.ExerciseMethod{
			Rest:         methodInput.Rest,
			Observations: methodInput.Observations,
			Order:        methodInput.Order,
		}

		for _, configInput := range methodInput.Configurations {
			method.Configurations = append(method.Configurations, models.ExerciseConfiguration{
				ExerciseID:  configInput.ExerciseID,
				TechniqueID: configInput.TechniqueID,
				Series:      configInput.Series,
				Reps:        configInput.Reps,
				Order:       configInput.Order,
			})
		}

		group.Methods = append(group.Methods, method)
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *GroupService) Get(ctx context.Context, id uint) (*models.ExerciseGroup, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GroupService) List(ctx context.Context, limit, offset int) ([]models.ExerciseGroup, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *GroupService) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *GroupService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
