package model

import (
	"time"
)

type MedicationRequest struct {
	ID         uint64     `gorm:"primaryKey"`
	StudentID  uint64     `gorm:"not null;index:idx_student_id" json:"student_id"`
	ParentID   uint64     `gorm:"not null;index:idx_parent_id" json:"parent_id"`
	Medication string     `gorm:"type:varchar(255);not null" json:"medication"`
	Dosage     string     `gorm:"type:varchar(100)" json:"dosage"`
	Schedule   string     `gorm:"type:varchar(255)" json:"schedule"` // 服药时段说明，如 "午饭后"
	Status     int8       `gorm:"not null;default:1" json:"status"`  // 1:待处理, 2:已安排, 3:已拒绝
	NurseID    *uint64    `gorm:"index:idx_nurse_id" json:"nurse_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (MedicationRequest) TableName() string {
	return "medication_requests"
}
