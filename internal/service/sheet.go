package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
	"github.com/treinofacil/trainsheet-api/internal/storage"
	"gorm.io/gorm"
)

// ErrInvalidPayload marks validation failures that are raised before any
// transaction is opened. Handlers map it to a 400.
var ErrInvalidPayload = errors.New("invalid payload")

// ErrSheetCreateFailed is the sanitized message returned for storage failures
// during bulk creation. The underlying database error is logged server-side
// and never reaches the caller.
var ErrSheetCreateFailed = errors.New("failed to create complete training sheet")

type SheetService struct {
	db    *storage.Postgres
	repo  *repository.SheetRepository
	redis *storage.RedisClient
}

func NewSheetService(db *storage.Postgres, repo *repository.SheetRepository, redis *storage.RedisClient) *SheetService {
	return &SheetService{
		db:    db,
		repo:  repo,
		redis: redis,
	}
}

type CompleteSheetInput struct {
	Name       string             `json:"name" binding:"required"`
	PublicName string             `json:"public_name"`
	Slug       string             `json:"slug"`
	Days       []CompleteDayInput `json:"days" binding:"required,min=1,dive"`
}

type CompleteDayInput struct {
	Day       int                `json:"day" binding:"required,min=1"`
	ShortName string             `json:"short_name"`
	Group     CompleteGroupInput `json:"group" binding:"required"`
}

type CompleteGroupInput struct {
	Name       string                `json:"name" binding:"required"`
	CategoryID *uint                 `json:"category_id"`
	Methods    []CompleteMethodInput `json:"methods" binding:"dive"`
}

type CompleteMethodInput struct {
	Rest           string                `json:"rest"`
	Observations   string                `json:"observations"`
	Order          *int                  `json:"order"`
	Configurations []CompleteConfigInput `json:"configurations" binding:"dive"`
}

type CompleteConfigInput struct {
	ExerciseID  uint   `json:"exercise_id" binding:"required"`
	TechniqueID *uint  `json:"technique_id"`
	Series      string `json:"series"`
	Reps        string `json:"reps"`
	Order       *int   `json:"order"`
}

// CompleteSheetResult bundles everything a bulk creation persisted. Groups,
// methods and configurations contain only newly created rows; groups that
// were merely reused do not appear.
type CompleteSheetResult struct {
	Sheet          *models.TrainingSheet          `json:"sheet"`
	Days           []models.TrainingDay           `json:"days"`
	Groups         []models.ExerciseGroup         `json:"groups"`
	Methods        []models.ExerciseMethod        `json:"methods"`
	Configurations []models.ExerciseConfiguration `json:"configurations"`
}

// CreateComplete creates a training sheet with all of its days, groups,
// methods and configurations in a single transaction. Groups are deduplicated
// by (name, category id): the first occurrence of a key either adopts an
// existing persisted group or creates a new one, and every later occurrence
// within the same call reuses the in-memory reference without touching the
// database again.
//
// An adopted group keeps its persisted methods and configurations as-is; any
// differing definition in the payload is dropped (first write wins).
func (s *SheetService) CreateComplete(ctx context.Context, input *CompleteSheetInput) (*CompleteSheetResult, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}
	if len(input.Days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidPayload)
	}

	result := &CompleteSheetResult{
		Days:           []models.TrainingDay{},
		Groups:         []models.ExerciseGroup{},
		Methods:        []models.ExerciseMethod{},
		Configurations: []models.ExerciseConfiguration{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tx = tx.WithContext(ctx)

		sheet := &models.TrainingSheet{
			Name:       input.Name,
			PublicName: input.PublicName,
			Slug:       input.Slug,
		}
		if sheet.PublicName == "" {
			sheet.PublicName = input.Name
		}
		if sheet.Slug == "" {
			sheet.Slug = Slugify(input.Name)
		}

		if err := tx.Create(sheet).Error; err != nil {
			return err
		}
		result.Sheet = sheet

		// Dedup map scoped to this single call
		groupsByKey := make(map[string]*models.ExerciseGroup)

		for _, dayInput := range input.Days {
			key := groupKey(dayInput.Group.Name, dayInput.Group.CategoryID)

			group, seen := groupsByKey[key]
			if !seen {
				existing, err := repository.FindByNameAndCategory(tx, dayInput.Group.Name, dayInput.Group.CategoryID)
				if err != nil {
					return err
				}

				if existing != nil {
					// Adopt the persisted group; its methods and
					// configurations are assumed already correct.
					group = existing
				} else {
					group = &models.ExerciseGroup{
						Name:       dayInput.Group.Name,
						CategoryID: dayInput.Group.CategoryID,
					}
					if err := tx.Create(group).Error; err != nil {
						return err
					}
					result.Groups = append(result.Groups, *group)

					for _, methodInput := range dayInput.Group.Methods {
						method := &models.ExerciseMethod{
							ExerciseGroupID: group.ID,
							Rest:            methodInput.Rest,
							Observations:    methodInput.Observations,
							Order:           methodInput.Order,
						}
						if err := tx.Create(method).Error; err != nil {
							return err
						}
						result.Methods = append(result.Methods, *method)

						for _, configInput := range methodInput.Configurations {
							config := &models.ExerciseConfiguration{
								ExerciseMethodID: method.ID,
								ExerciseID:       configInput.ExerciseID,
								TechniqueID:      configInput.TechniqueID,
								Series:           configInput.Series,
								Reps:             configInput.Reps,
								Order:            configInput.Order,
							}
							if err := tx.Create(config).Error; err != nil {
								return err
							}
							result.Configurations = append(result.Configurations, *config)
						}
					}
				}

				groupsByKey[key] = group
			}

			day := &models.TrainingDay{
				TrainingSheetID: sheet.ID,
				ExerciseGroupID: group.ID,
				Day:             dayInput.Day,
				ShortName:       dayInput.ShortName,
			}
			if err := tx.Create(day).Error; err != nil {
				return err
			}
			result.Days = append(result.Days, *day)
		}

		return nil
	})

	if err != nil {
		log.Printf("bulk sheet creation failed: %v", err)
		return nil, ErrSheetCreateFailed
	}

	s.invalidateCache(ctx, result.Sheet.Slug)

	return result, nil
}

func (s *SheetService) Create(ctx context.Context, sheet *models.TrainingSheet) error {
	if strings.TrimSpace(sheet.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}

	if sheet.PublicName == "" {
		sheet.PublicName = sheet.Name
	}
	if sheet.Slug == "" {
		sheet.Slug = Slugify(sheet.Name)
	}

	return s.repo.Create(ctx, sheet)
}

func (s *SheetService) Get(ctx context.Context, id uint) (*models.TrainingSheet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SheetService) List(ctx context.Context, limit, offset int) ([]models.TrainingSheet, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// GetBySlug serves the public program view through a redis read-through
// cache. Cache failures degrade to a plain database read.
func (s *SheetService) GetBySlug(ctx context.Context, slug string) (*models.TrainingSheet, error) {
	cacheKey := sheetCacheKey(slug)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var sheet models.TrainingSheet
			if err := json.Unmarshal([]byte(cached), &sheet); err == nil {
				return &sheet, nil
			}
		}
	}

	sheet, err := s.repo.FindBySlug(ctx, slug)
	if err != nil || sheet == nil {
		return sheet, err
	}

	if s.redis != nil {
		if sheetJSON, err := json.Marshal(sheet); err == nil {
			s.redis.Set(ctx, cacheKey, sheetJSON, 5*time.Minute)
		}
	}

	return sheet, nil
}

func (s *SheetService) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sheet == nil {
		return nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return err
	}

	s.invalidateCache(ctx, sheet.Slug)
	if slug, ok := updates["slug"].(string); ok {
		s.invalidateCache(ctx, slug)
	}

	return nil
}

func (s *SheetService) Delete(ctx context.Context, id uint) error {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sheet == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, sheet.Slug)

	return nil
}

func (s *SheetService) invalidateCache(ctx context.Context, slug string) {
	if s.redis == nil || slug == "" {
		return
	}

	s.redis.Del(ctx, sheetCacheKey(slug))
}

func sheetCacheKey(slug string) string {
	return fmt.Sprintf("sheet:slug:%s", slug)
}

// groupKey builds the dedup key: name + "|" + category id, with "null"
// standing in for a missing category so it never collides with a real id.
func groupKey(name string, categoryID *uint) string {
	if categoryID == nil {
		return name + "|null"
	}

	return name + "|" + strconv.FormatUint(uint64(*categoryID), 10)
}

// Slugify derives a URL slug: lowercase, ascii letters and digits kept,
// everything else collapsed into single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
