package repository

import (
	"SchoolCare/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsentRepo interface {
	GetConsentByCampaignAndStudent(ctx context.Context, campaignID, studentID uint64) (*model.Consent, error)
	GetConsentListByCampaign(ctx context.Context, campaignID uint64, limit, offset int) ([]*model.Consent, error)
	UpsertConsent(ctx context.Context, consent *model.Consent) error
}

type ConsentRepoImpl struct {
	db *gorm.DB
}

func NewConsentRepo(db *gorm.DB) ConsentRepo {
	return &ConsentRepoImpl{db: db}
}

func (s *ConsentRepoImpl) GetConsentByCampaignAndStudent(ctx context.Context, campaignID, studentID uint64) (*model.Consent, error) {
	consent := &model.Consent{}
	result := s.db.WithContext(ctx).
		Where("campaign_id = ? AND student_id = ?", campaignID, studentID).
		First(consent)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return consent, nil
}

func (s *ConsentRepoImpl) GetConsentListByCampaign(ctx context.Context, campaignID uint64, limit, offset int) ([]*model.Consent, error) {
	var consents []*model.Consent
	result := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&consents)

	if result.Error != nil {
		return nil, result.Error
	}
	return consents, nil
}

// UpsertConsent 家长可以在截止前改变回执，按 (campaign_id, student_id) 覆盖
func (s *ConsentRepoImpl) UpsertConsent(ctx context.Context, consent *model.Consent) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
		}).
		Create(consent).Error
}
