package model

import (
	"time"
)

type Consent struct {
	ID         uint64    `gorm:"primaryKey"`
	CampaignID uint64    `gorm:"not null;uniqueIndex:idx_campaign_student" json:"campaign_id"`
	StudentID  uint64    `gorm:"not null;uniqueIndex:idx_campaign_student" json:"student_id"`
	ParentID   uint64    `gorm:"not null;index:idx_parent_id" json:"parent_id"`
	Status     int8      `gorm:"not null" json:"status"` // 1:同意, 2:拒绝
	Note       string    `gorm:"type:varchar(512)" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Consent) TableName() string {
	return "consents"
}
