package dto

import "time"

type CreateCampaignDTO struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Type        string    `json:"type" binding:"required,oneof=HealthCheckCampaign VaccinationCampaign"`
	GradeLevels []int     `json:"grade_levels" binding:"required,min=1,dive,min=1,max=12"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
}

type CampaignDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	GradeLevels []int     `json:"grade_levels"`
	Status      int8      `json:"status"`
	CreatedBy   uint64    `json:"created_by"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// RecordResultDTO 录入某学生在该活动下的结果摘要
type RecordResultDTO struct {
	StudentID uint64 `json:"student_id" binding:"required"`
	Summary   string `json:"summary" binding:"required,max=512"`
}
