package dto

import "time"

// CreateMedicationDTO 家长发起的送药申请
type CreateMedicationDTO struct {
	StudentID  uint64 `json:"student_id" binding:"required"`
	Medication string `json:"medication" binding:"required,max=255"`
	Dosage     string `json:"dosage" binding:"max=100"`
	Schedule   string `json:"schedule" binding:"max=255"`
}

// ScheduleMedicationDTO 校医受理申请并排期
type ScheduleMedicationDTO struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
}
