package dto

// SubmitConsentDTO 家长对活动的知情同意回执，可重复提交覆盖
type SubmitConsentDTO struct {
	CampaignID uint64 `json:"campaign_id" binding:"required"`
	StudentID  uint64 `json:"student_id" binding:"required"`
	Status     int8   `json:"status" binding:"required,oneof=1 2"`
	Note       string `json:"note" binding:"max=512"`
}
