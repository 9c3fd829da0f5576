package repository

import (
	"SchoolCare/internal/model"
	"context"

	"gorm.io/gorm"
)

type IncidentRepo interface {
	CreateIncident(ctx context.Context, incident *model.Incident) error
	GetIncidentListByStudent(ctx context.Context, studentID uint64, limit, offset int) ([]*model.Incident, error)
}

type IncidentRepoImpl struct {
	db *gorm.DB
}

func NewIncidentRepo(db *gorm.DB) IncidentRepo {
	return &IncidentRepoImpl{db: db}
}

func (s *IncidentRepoImpl) CreateIncident(ctx context.Context, incident *model.Incident) error {
	return s.db.WithContext(ctx).Create(incident).Error
}

func (s *IncidentRepoImpl) GetIncidentListByStudent(ctx context.Context, studentID uint64, limit, offset int) ([]*model.Incident, error) {
	var incidents []*model.Incident
	result := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("occurred_at desc").
		Limit(limit).
		Offset(offset).
		Find(&incidents)

	if result.Error != nil {
		return nil, result.Error
	}
	return incidents, nil
}
