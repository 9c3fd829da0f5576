package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/repository"
	"context"
)

type MedicationService interface {
	CreateRequest(ctx context.Context, parentID uint64, createDTO *dto.CreateMedicationDTO) error
	ScheduleRequest(ctx context.Context, requestID, nurseID uint64, scheduleDTO *dto.ScheduleMedicationDTO) error
}

type MedicationServiceImpl struct {
	medicationRepo repository.MedicationRepo
	studentRepo    repository.StudentRepo
	notifier       NotifierService
}

func NewMedicationService(medicationRepo repository.MedicationRepo, studentRepo repository.StudentRepo, notifier NotifierService) MedicationService {
	return &MedicationServiceImpl{
		medicationRepo: medicationRepo,
		studentRepo:    studentRepo,
		notifier:       notifier,
	}
}

func (s *MedicationServiceImpl) CreateRequest(ctx context.Context, parentID uint64, createDTO *dto.CreateMedicationDTO) error {
	linkedParent, err := s.studentRepo.GetParentIDByStudentId(ctx, createDTO.StudentID)
	if err != nil {
		return err
	}
	if linkedParent == nil {
		return ErrStudentNotFound
	}
	if *linkedParent != parentID {
		return ErrStudentNotLinked
	}

	req := &model.MedicationRequest{
		StudentID:  createDTO.StudentID,
		ParentID:   parentID,
		Medication: createDTO.Medication,
		Dosage:     createDTO.Dosage,
		Schedule:   createDTO.Schedule,
	}
	return s.medicationRepo.CreateRequest(ctx, req)
}

// ScheduleRequest 校医受理送药申请，待处理单才允许排期
func (s *MedicationServiceImpl) ScheduleRequest(ctx context.Context, requestID, nurseID uint64, scheduleDTO *dto.ScheduleMedicationDTO) error {
	req, err := s.medicationRepo.GetRequestById(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrMedicationNotFound
	}

	rows, err := s.medicationRepo.ScheduleRequest(ctx, requestID, nurseID, scheduleDTO.StartDate, scheduleDTO.EndDate)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMedicationNotPending
	}

	req.NurseID = &nurseID
	req.StartDate = &scheduleDTO.StartDate
	req.EndDate = &scheduleDTO.EndDate
	s.notifier.MedicationScheduled(ctx, req)
	return nil
}
