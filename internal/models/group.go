package models

import "time"

// A reusable bundle of exercise methods, optionally tagged with a category.
// Two groups are the same record iff (name, category_id) match exactly;
// the composite index lets postgres reject racing duplicate creators.
type ExerciseGroup struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Name       string            `gorm:"not null;uniqueIndex:idx_groups_name_category" json:"name"`
	CategoryID *uint             `gorm:"uniqueIndex:idx_groups_name_category" json:"category_id,omitempty"`
	Category   *ExerciseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Methods    []ExerciseMethod  `gorm:"foreignKey:ExerciseGroupID" json:"methods,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (ExerciseGroup) TableName() string {
	return "exercise_groups"
}

type ExerciseMethod struct {
	ID              uint                    `gorm:"primaryKey" json:"id"`
	ExerciseGroupID uint                    `gorm:"not null;index" json:"exercise_group_id"`
	Rest            string                  `json:"rest,omitempty"`
	Observations    string                  `json:"observations,omitempty"`
	Order           *int                    `gorm:"column:display_order" json:"order,omitempty"`
	Configurations  []ExerciseConfiguration `gorm:"foreignKey:ExerciseMethodID" json:"configurations,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

func (ExerciseMethod) TableName() string {
	return "exercise_methods"
}

// Series and reps are free-form strings ("3", "8-12", "until failure"), never parsed.
type ExerciseConfiguration struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	ExerciseMethodID uint             `gorm:"not null;index" json:"exercise_method_id"`
	ExerciseID       uint             `gorm:"not null" json:"exercise_id"`
	Exercise         *Exercise        `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	TechniqueID      *uint            `json:"technique_id,omitempty"`
	Technique        *MethodTechnique `gorm:"foreignKey:TechniqueID" json:"technique,omitempty"`
	Series           string           `json:"series,omitempty"`
	Reps             string           `json:"reps,omitempty"`
	Order            *int             `gorm:"column:display_order" json:"order,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func (ExerciseConfiguration) TableName() string {
	return "exercise_configurations"
}
