package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/repository"
	"context"
	log "log/slog"
)

type ConsentService interface {
	SubmitConsent(ctx context.Context, parentID uint64, submitDTO *dto.SubmitConsentDTO) error
	GetConsentList(ctx context.Context, campaignID uint64, page, pageSize int) ([]*model.Consent, error)
}

type ConsentServiceImpl struct {
	consentRepo  repository.ConsentRepo
	campaignRepo repository.CampaignRepo
	studentRepo  repository.StudentRepo
	notifier     NotifierService
}

func NewConsentService(
	consentRepo repository.ConsentRepo,
	campaignRepo repository.CampaignRepo,
	studentRepo repository.StudentRepo,
	notifier NotifierService,
) ConsentService {
	return &ConsentServiceImpl{
		consentRepo:  consentRepo,
		campaignRepo: campaignRepo,
		studentRepo:  studentRepo,
		notifier:     notifier,
	}
}

// SubmitConsent 家长提交回执，重复提交按最新一次覆盖
func (s *ConsentServiceImpl) SubmitConsent(ctx context.Context, parentID uint64, submitDTO *dto.SubmitConsentDTO) error {
	campaign, err := s.campaignRepo.GetCampaignById(ctx, submitDTO.CampaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	// 只能替自己名下的学生提交
	linkedParent, err := s.studentRepo.GetParentIDByStudentId(ctx, submitDTO.StudentID)
	if err != nil {
		return err
	}
	if linkedParent == nil {
		return ErrStudentNotFound
	}
	if *linkedParent != parentID {
		return ErrStudentNotLinked
	}

	consent := &model.Consent{
		CampaignID: submitDTO.CampaignID,
		StudentID:  submitDTO.StudentID,
		ParentID:   parentID,
		Status:     submitDTO.Status,
		Note:       submitDTO.Note,
	}
	if err := s.consentRepo.UpsertConsent(ctx, consent); err != nil {
		return err
	}

	// 覆盖提交走更新路径时自增主键不会回填，回读拿到真实回执再通知
	saved, err := s.consentRepo.GetConsentByCampaignAndStudent(ctx, submitDTO.CampaignID, submitDTO.StudentID)
	if err != nil || saved == nil {
		log.WarnContext(ctx, "reload consent after upsert error",
			"campaign_id", submitDTO.CampaignID, "student_id", submitDTO.StudentID, "err", err)
		return nil
	}

	s.notifier.ConsentSubmitted(ctx, saved)
	return nil
}

// GetConsentList 活动维度的回执汇总，发布方跟进收集进度用
func (s *ConsentServiceImpl) GetConsentList(ctx context.Context, campaignID uint64, page, pageSize int) ([]*model.Consent, error) {
	campaign, err := s.campaignRepo.GetCampaignById(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return s.consentRepo.GetConsentListByCampaign(ctx, campaignID, pageSize, (page-1)*pageSize)
}
