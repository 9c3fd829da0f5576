package model

import (
	"time"
)

type CampaignResult struct {
	ID         uint64    `gorm:"primaryKey"`
	CampaignID uint64    `gorm:"not null;index:idx_campaign_id" json:"campaign_id"`
	StudentID  uint64    `gorm:"not null;index:idx_student_id" json:"student_id"`
	Summary    string    `gorm:"type:varchar(512)" json:"summary"` // 结论摘要，详情由客户端跳转查看
	RecordedBy uint64    `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CampaignResult) TableName() string {
	return "campaign_results"
}
