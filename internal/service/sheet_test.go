package service

import (
	"context"
	"errors"
	"testing"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
	"github.com/treinofacil/trainsheet-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *storage.Postgres {
	t.Helper()

	// Foreign keys on so bad references fail inside the transaction
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	pg := &storage.Postgres{DB: db}
	if err := pg.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return pg
}

func newTestSheetService(t *testing.T) (*SheetService, *storage.Postgres) {
	t.Helper()

	db := newTestDB(t)
	repo := repository.NewSheetRepository(db)

	return NewSheetService(db, repo, nil), db
}

func seedExercise(t *testing.T, db *storage.Postgres, name string) *models.Exercise {
	t.Helper()

	exercise := &models.Exercise{Name: name}
	if err := db.DB.Create(exercise).Error; err != nil {
		t.Fatalf("failed to seed exercise: %v", err)
	}

	return exercise
}

func seedCategory(t *testing.T, db *storage.Postgres, name string) *models.ExerciseCategory {
	t.Helper()

	category := &models.ExerciseCategory{Name: name}
	if err := db.DB.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	return category
}

func count(t *testing.T, db *storage.Postgres, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}

	return n
}

func dayInput(day int, groupName string, categoryID *uint, exerciseID uint) CompleteDayInput {
	return CompleteDayInput{
		Day:   day,
		Group: groupInput(groupName, categoryID, exerciseID),
	}
}

func groupInput(name string, categoryID *uint, exerciseID uint) CompleteGroupInput {
	return CompleteGroupInput{
		Name:       name,
		CategoryID: categoryID,
		Methods: []CompleteMethodInput{
			{
				Rest: "90s",
				Configurations: []CompleteConfigInput{
					{ExerciseID: exerciseID, Series: "4", Reps: "8-12"},
				},
			},
		},
	}
}

func TestCreateComplete_ValidationBeforeTransaction(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CompleteSheetInput
	}{
		{"empty name", CompleteSheetInput{Name: "  ", Days: []CompleteDayInput{{Day: 1}}}},
		{"no days", CompleteSheetInput{Name: "Hypertrophy A", Days: nil}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateComplete(ctx, &tc.input)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}

	if n := count(t, db, &models.TrainingSheet{}); n != 0 {
		t.Errorf("validation failures must not persist anything, found %d sheets", n)
	}
}

func TestCreateComplete_FullCreation(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Bench Press")

	input := &CompleteSheetInput{
		Name: "Hypertrophy Phase 1",
		Days: []CompleteDayInput{
			dayInput(1, "Push Day", nil, exercise.ID),
			dayInput(2, "Pull Day", nil, exercise.ID),
		},
	}

	result, err := svc.CreateComplete(ctx, input)
	if err != nil {
		t.Fatalf("CreateComplete failed: %v", err)
	}

	if result.Sheet == nil || result.Sheet.ID == 0 {
		t.Fatal("expected a persisted sheet")
	}
	if result.Sheet.PublicName != "Hypertrophy Phase 1" {
		t.Errorf("public name should default to name, got %q", result.Sheet.PublicName)
	}
	if result.Sheet.Slug != "hypertrophy-phase-1" {
		t.Errorf("slug should default to slugified name, got %q", result.Sheet.Slug)
	}

	if len(result.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(result.Days))
	}
	// Days come back in payload order
	if result.Days[0].Day != 1 || result.Days[1].Day != 2 {
		t.Errorf("days out of payload order: %d, %d", result.Days[0].Day, result.Days[1].Day)
	}

	if len(result.Groups) != 2 {
		t.Errorf("expected 2 new groups, got %d", len(result.Groups))
	}
	if len(result.Methods) != 2 {
		t.Errorf("expected 2 new methods, got %d", len(result.Methods))
	}
	if len(result.Configurations) != 2 {
		t.Errorf("expected 2 new configurations, got %d", len(result.Configurations))
	}
}

func TestCreateComplete_IntraCallDeduplication(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Squat")

	// Three days sharing the same (name, nil category) group
	input := &CompleteSheetInput{
		Name: "Leg Focus",
		Days: []CompleteDayInput{
			dayInput(1, "Leg Day", nil, exercise.ID),
			dayInput(2, "Leg Day", nil, exercise.ID),
			dayInput(3, "Leg Day", nil, exercise.ID),
		},
	}

	result, err := svc.CreateComplete(ctx, input)
	if err != nil {
		t.Fatalf("CreateComplete failed: %v", err)
	}

	if len(result.Groups) != 1 {
		t.Fatalf("expected exactly 1 group after dedup, got %d", len(result.Groups))
	}

	groupID := result.Groups[0].ID
	for i, day := range result.Days {
		if day.ExerciseGroupID != groupID {
			t.Errorf("day %d references group %d, expected %d", i+1, day.ExerciseGroupID, groupID)
		}
	}

	if n := count(t, db, &models.ExerciseGroup{}); n != 1 {
		t.Errorf("expected 1 persisted group, found %d", n)
	}
	// One method and one config, from the first occurrence only
	if n := count(t, db, &models.ExerciseMethod{}); n != 1 {
		t.Errorf("expected 1 persisted method, found %d", n)
	}
}

func TestCreateComplete_CrossCallReuse(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Overhead Press")
	category := seedCategory(t, db, "Push")

	// Persist "Push Day" in a first bulk call
	first := &CompleteSheetInput{
		Name: "Sheet A",
		Days: []CompleteDayInput{dayInput(1, "Push Day", &category.ID, exercise.ID)},
	}
	firstResult, err := svc.CreateComplete(ctx, first)
	if err != nil {
		t.Fatalf("first CreateComplete failed: %v", err)
	}
	if len(firstResult.Groups) != 1 {
		t.Fatalf("expected the first call to create the group")
	}
	existingID := firstResult.Groups[0].ID

	methodsBefore := count(t, db, &models.ExerciseMethod{})

	// A second call matching the exact (name, categoryID) pair adopts it,
	// even when the payload carries a different method definition
	second := &CompleteSheetInput{
		Name: "Sheet B",
		Days: []CompleteDayInput{
			{
				Day: 1,
				Group: CompleteGroupInput{
					Name:       "Push Day",
					CategoryID: &category.ID,
					Methods: []CompleteMethodInput{
						{Rest: "completely different", Configurations: []CompleteConfigInput{
							{ExerciseID: exercise.ID, Series: "10", Reps: "10"},
						}},
					},
				},
			},
		},
	}
	secondResult, err := svc.CreateComplete(ctx, second)
	if err != nil {
		t.Fatalf("second CreateComplete failed: %v", err)
	}

	if len(secondResult.Groups) != 0 {
		t.Errorf("reused groups must not be reported as created, got %d", len(secondResult.Groups))
	}
	if secondResult.Days[0].ExerciseGroupID != existingID {
		t.Errorf("day should reference the existing group %d, got %d", existingID, secondResult.Days[0].ExerciseGroupID)
	}

	// First write wins: adopted groups keep their persisted methods untouched
	if methodsAfter := count(t, db, &models.ExerciseMethod{}); methodsAfter != methodsBefore {
		t.Errorf("adoption must not create methods: before %d, after %d", methodsBefore, methodsAfter)
	}
}

func TestCreateComplete_NullCategoryIsDistinct(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Deadlift")
	category := seedCategory(t, db, "Posterior")

	input := &CompleteSheetInput{
		Name: "Mixed",
		Days: []CompleteDayInput{
			dayInput(1, "Heavy Day", nil, exercise.ID),
			dayInput(2, "Heavy Day", &category.ID, exercise.ID),
		},
	}

	result, err := svc.CreateComplete(ctx, input)
	if err != nil {
		t.Fatalf("CreateComplete failed: %v", err)
	}

	if len(result.Groups) != 2 {
		t.Fatalf("same name with null vs non-null category must create 2 groups, got %d", len(result.Groups))
	}
	if result.Days[0].ExerciseGroupID == result.Days[1].ExerciseGroupID {
		t.Error("days should reference two distinct groups")
	}
}

func TestCreateComplete_Atomicity(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Row")

	// Second day references a nonexistent exercise; the foreign key rejects
	// it mid-transaction and everything must roll back
	input := &CompleteSheetInput{
		Name: "Doomed Sheet",
		Days: []CompleteDayInput{
			dayInput(1, "Good Day", nil, exercise.ID),
			dayInput(2, "Bad Day", nil, 9999),
		},
	}

	_, err := svc.CreateComplete(ctx, input)
	if err == nil {
		t.Fatal("expected the bulk creation to fail")
	}
	if !errors.Is(err, ErrSheetCreateFailed) {
		t.Fatalf("storage failures must surface as the sanitized error, got %v", err)
	}

	if n := count(t, db, &models.TrainingSheet{}); n != 0 {
		t.Errorf("expected no persisted sheets, found %d", n)
	}
	if n := count(t, db, &models.TrainingDay{}); n != 0 {
		t.Errorf("expected no persisted days, found %d", n)
	}
	if n := count(t, db, &models.ExerciseGroup{}); n != 0 {
		t.Errorf("expected no persisted groups, found %d", n)
	}
	if n := count(t, db, &models.ExerciseMethod{}); n != 0 {
		t.Errorf("expected no persisted methods, found %d", n)
	}
	if n := count(t, db, &models.ExerciseConfiguration{}); n != 0 {
		t.Errorf("expected no persisted configurations, found %d", n)
	}
}

func TestGetBySlug(t *testing.T) {
	svc, db := newTestSheetService(t)
	ctx := context.Background()

	exercise := seedExercise(t, db, "Curl")

	input := &CompleteSheetInput{
		Name: "Arms Program",
		Days: []CompleteDayInput{dayInput(1, "Arm Day", nil, exercise.ID)},
	}
	if _, err := svc.CreateComplete(ctx, input); err != nil {
		t.Fatalf("CreateComplete failed: %v", err)
	}

	sheet, err := svc.GetBySlug(ctx, "arms-program")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if sheet == nil {
		t.Fatal("expected the program to resolve by slug")
	}
	if len(sheet.Days) != 1 {
		t.Fatalf("expected 1 preloaded day, got %d", len(sheet.Days))
	}
	if sheet.Days[0].ExerciseGroup == nil {
		t.Error("expected the day's group to be preloaded")
	}

	missing, err := svc.GetBySlug(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for an unknown slug")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hypertrophy Phase 1", "hypertrophy-phase-1"},
		{"  Push / Pull / Legs  ", "push-pull-legs"},
		{"Treino A/B", "treino-a-b"},
		{"UPPER lower", "upper-lower"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
