package dto

import "time"

type CreateIncidentDTO struct {
	StudentID   uint64    `json:"student_id" binding:"required"`
	Severity    int8      `json:"severity" binding:"required,oneof=1 2 3"`
	Description string    `json:"description" binding:"required"`
	Action      string    `json:"action" binding:"max=512"`
	OccurredAt  time.Time `json:"occurred_at" binding:"required"`
}
