package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, creatorID uint64, createDTO *dto.CreateCampaignDTO) error
	GetCampaignList(ctx context.Context, page, pageSize int) ([]*dto.CampaignDTO, error)
	AnnounceCampaign(ctx context.Context, id uint64) error
	RecordResult(ctx context.Context, campaignID, recorderID uint64, resultDTO *dto.RecordResultDTO) error
}

type CampaignServiceImpl struct {
	campaignRepo repository.CampaignRepo
	studentRepo  repository.StudentRepo
	notifier     NotifierService
}

func NewCampaignService(campaignRepo repository.CampaignRepo, studentRepo repository.StudentRepo, notifier NotifierService) CampaignService {
	return &CampaignServiceImpl{
		campaignRepo: campaignRepo,
		studentRepo:  studentRepo,
		notifier:     notifier,
	}
}

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, creatorID uint64, createDTO *dto.CreateCampaignDTO) error {
	campaign := &model.Campaign{}
	if err := copier.Copy(campaign, createDTO); err != nil {
		return err
	}
	campaign.Status = consts.CampaignStatusDraft
	campaign.CreatedBy = creatorID

	return s.campaignRepo.CreateCampaign(ctx, campaign)
}

func (s *CampaignServiceImpl) GetCampaignList(ctx context.Context, page, pageSize int) ([]*dto.CampaignDTO, error) {
	list, err := s.campaignRepo.GetCampaignList(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CampaignDTO, 0, len(list))
	for _, c := range list {
		d := &dto.CampaignDTO{}
		if err := copier.Copy(d, c); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}

// AnnounceCampaign 发布草稿活动，状态流转成功后才触发家长通知
func (s *CampaignServiceImpl) AnnounceCampaign(ctx context.Context, id uint64) error {
	campaign, err := s.campaignRepo.GetCampaignById(ctx, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	rows, err := s.campaignRepo.UpdateCampaignStatus(ctx, id, consts.CampaignStatusDraft, consts.CampaignStatusAnnounced)
	if err != nil {
		return err
	}
	// 并发发布时只有赢家会扇出通知
	if rows == 0 {
		return ErrCampaignNotDraft
	}

	campaign.Status = consts.CampaignStatusAnnounced
	s.notifier.CampaignAnnounced(ctx, campaign)
	return nil
}

// RecordResult 录入活动结果，成功后通知该学生家长
func (s *CampaignServiceImpl) RecordResult(ctx context.Context, campaignID, recorderID uint64, resultDTO *dto.RecordResultDTO) error {
	campaign, err := s.campaignRepo.GetCampaignById(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	student, err := s.studentRepo.GetStudentById(ctx, resultDTO.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}

	result := &model.CampaignResult{
		CampaignID: campaignID,
		StudentID:  resultDTO.StudentID,
		Summary:    resultDTO.Summary,
		RecordedBy: recorderID,
	}
	if err := s.campaignRepo.CreateResult(ctx, result); err != nil {
		return err
	}

	s.notifier.ResultReady(ctx, result)
	return nil
}
