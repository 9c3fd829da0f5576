package model

import (
	"time"
)

type Incident struct {
	ID          uint64    `gorm:"primaryKey"`
	StudentID   uint64    `gorm:"not null;index:idx_student_id" json:"student_id"`
	Severity    int8      `gorm:"not null;default:1" json:"severity"` // 1:轻微, 2:一般, 3:严重
	Description string    `gorm:"not null" json:"description"`
	Action      string    `gorm:"type:varchar(512)" json:"action"` // 现场处置措施
	ReportedBy  uint64    `gorm:"not null" json:"reported_by"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Incident) TableName() string {
	return "incidents"
}
