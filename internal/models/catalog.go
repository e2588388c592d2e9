package models

import "time"

// Groups exercises by muscle group or training focus (e.g. "Chest", "Legs")
type ExerciseCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExerciseCategory) TableName() string {
	return "exercise_categories"
}

type Exercise struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null;index" json:"name"`
	Description string            `json:"description,omitempty"`
	VideoURL    string            `json:"video_url,omitempty"`
	CategoryID  *uint             `gorm:"index" json:"category_id,omitempty"`
	Category    *ExerciseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// An execution technique applied to a configuration (e.g. "Drop set", "Rest-pause")
type MethodTechnique struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MethodTechnique) TableName() string {
	return "method_techniques"
}
