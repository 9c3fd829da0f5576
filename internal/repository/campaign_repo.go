package repository

import (
	"SchoolCare/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CampaignRepo interface {
	GetCampaignById(ctx context.Context, id uint64) (*model.Campaign, error)
	GetCampaignList(ctx context.Context, limit, offset int) ([]*model.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *model.Campaign) error
	UpdateCampaignStatus(ctx context.Context, id uint64, from, to int8) (int64, error)
	CreateResult(ctx context.Context, result *model.CampaignResult) error
}

type CampaignRepoImpl struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) CampaignRepo {
	return &CampaignRepoImpl{db: db}
}

func (s *CampaignRepoImpl) GetCampaignById(ctx context.Context, id uint64) (*model.Campaign, error) {
	campaign := &model.Campaign{}
	result := s.db.WithContext(ctx).First(campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return campaign, nil
}

func (s *CampaignRepoImpl) GetCampaignList(ctx context.Context, limit, offset int) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign
	result := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&campaigns)

	if result.Error != nil {
		return nil, result.Error
	}
	return campaigns, nil
}

func (s *CampaignRepoImpl) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	return s.db.WithContext(ctx).Create(campaign).Error
}

// UpdateCampaignStatus 带原状态条件的状态流转，返回影响行数用于检测并发发布
func (s *CampaignRepoImpl) UpdateCampaignStatus(ctx context.Context, id uint64, from, to int8) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *CampaignRepoImpl) CreateResult(ctx context.Context, result *model.CampaignResult) error {
	return s.db.WithContext(ctx).Create(result).Error
}
