package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type IncidentService interface {
	CreateIncident(ctx context.Context, reporterID uint64, createDTO *dto.CreateIncidentDTO) error
	GetIncidentList(ctx context.Context, studentID uint64, page, pageSize int) ([]*model.Incident, error)
}

type IncidentServiceImpl struct {
	incidentRepo repository.IncidentRepo
	studentRepo  repository.StudentRepo
	notifier     NotifierService
}

func NewIncidentService(incidentRepo repository.IncidentRepo, studentRepo repository.StudentRepo, notifier NotifierService) IncidentService {
	return &IncidentServiceImpl{
		incidentRepo: incidentRepo,
		studentRepo:  studentRepo,
		notifier:     notifier,
	}
}

// CreateIncident 记录健康事件，落库成功后告警家长和管理层
func (s *IncidentServiceImpl) CreateIncident(ctx context.Context, reporterID uint64, createDTO *dto.CreateIncidentDTO) error {
	student, err := s.studentRepo.GetStudentById(ctx, createDTO.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}

	incident := &model.Incident{}
	if err := copier.Copy(incident, createDTO); err != nil {
		return err
	}
	incident.ReportedBy = reporterID

	if err := s.incidentRepo.CreateIncident(ctx, incident); err != nil {
		return err
	}

	s.notifier.IncidentLogged(ctx, incident)
	return nil
}

func (s *IncidentServiceImpl) GetIncidentList(ctx context.Context, studentID uint64, page, pageSize int) ([]*model.Incident, error) {
	return s.incidentRepo.GetIncidentListByStudent(ctx, studentID, pageSize, (page-1)*pageSize)
}
