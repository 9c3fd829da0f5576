package model

import (
	"time"
)

type Student struct {
	ID        uint64     `gorm:"primaryKey"`
	FullName  string     `gorm:"type:varchar(100);not null" json:"full_name"`
	ClassID   uint64     `gorm:"not null;index:idx_class_id" json:"class_id"`
	ParentID  *uint64    `gorm:"index:idx_parent_id" json:"parent_id"` // 关联家长账号，可能尚未绑定
	Status    int8       `gorm:"not null;default:1" json:"status"`     // 1:在读, 2:离校
	BirthDate *time.Time `json:"birth_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Class SchoolClass `gorm:"foreignKey:ClassID;references:ID"`
}

func (Student) TableName() string {
	return "students"
}
