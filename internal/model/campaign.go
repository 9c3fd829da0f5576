package model

import (
	"time"
)

type Campaign struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `gorm:"type:varchar(50);not null" json:"type"` // HealthCheckCampaign / VaccinationCampaign
	GradeLevels []int     `gorm:"serializer:json" json:"grade_levels"`   // 面向的年级
	Status      int8      `gorm:"not null;default:1" json:"status"`      // 1:草稿, 2:已发布, 3:已结束
	CreatedBy   uint64    `gorm:"not null;index:idx_created_by" json:"created_by"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
