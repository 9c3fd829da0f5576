package model

import (
	"time"
)

type SchoolClass struct {
	ID         uint64    `gorm:"primaryKey"`
	Name       string    `gorm:"type:varchar(50);not null" json:"name"`
	GradeLevel int       `gorm:"not null;index:idx_grade_level" json:"grade_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SchoolClass) TableName() string {
	return "school_classes"
}
