package models

import "time"

// A full multi-week program referencing one exercise group per day.
type TrainingSheet struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"not null" json:"name"`
	PublicName string        `gorm:"not null" json:"public_name"`
	Slug       string        `gorm:"uniqueIndex;not null" json:"slug"`
	Days       []TrainingDay `gorm:"foreignKey:TrainingSheetID" json:"days,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (TrainingSheet) TableName() string {
	return "training_sheets"
}

type TrainingDay struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	TrainingSheetID uint           `gorm:"not null;index" json:"training_sheet_id"`
	ExerciseGroupID uint           `gorm:"not null;index" json:"exercise_group_id"`
	ExerciseGroup   *ExerciseGroup `gorm:"foreignKey:ExerciseGroupID" json:"exercise_group,omitempty"`
	Day             int            `gorm:"not null" json:"day"`
	ShortName       string         `json:"short_name,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (TrainingDay) TableName() string {
	return "training_days"
}
