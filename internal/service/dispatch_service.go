package service

import (
	pkgmongo "SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/pkg/notify"
	"SchoolCare/internal/pkg/push"
	"SchoolCare/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// NotificationDispatchService 扇出任务的消费核心
// Dispatch 返回错误即任务失败需要重试，推送通道的任何问题都不算任务失败
type NotificationDispatchService interface {
	Dispatch(ctx context.Context, job *notify.JobPayload) error
}

type dispatchServiceImpl struct {
	notificationRepo pkgmongo.NotificationRepo
	tokenRepo        repository.DeviceTokenRepo
	userRepo         repository.UserRepo
	gateway          push.Gateway
}

func NewNotificationDispatchService(
	notificationRepo pkgmongo.NotificationRepo,
	tokenRepo repository.DeviceTokenRepo,
	userRepo repository.UserRepo,
	gateway push.Gateway,
) NotificationDispatchService {
	return &dispatchServiceImpl{
		notificationRepo: notificationRepo,
		tokenRepo:        tokenRepo,
		userRepo:         userRepo,
		gateway:          gateway,
	}
}

// Dispatch 处理一条扇出任务
// 先批量落库（失败整条任务重试），再逐个收件人做尽力推送
func (s *dispatchServiceImpl) Dispatch(ctx context.Context, job *notify.JobPayload) error {
	recipients := dedupeIDs(job.RecipientIDs)
	if len(recipients) == 0 {
		log.WarnContext(ctx, "notification job has no recipient, ack as handled", "job_id", job.JobID)
		return nil
	}

	now := time.Now()
	docs := make([]*pkgmongo.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		docs = append(docs, &pkgmongo.Notification{
			JobID:       job.JobID,
			RecipientID: recipientID,
			Type:        string(job.Type),
			EntityID:    job.EntityID,
			EntityModel: string(job.EntityModel),
			ActorID:     job.ActorID,
			IsRead:      false,
			CreatedAt:   now,
		})
	}

	// 落库是任务成功的唯一判据
	if err := s.notificationRepo.InsertBatch(ctx, docs); err != nil {
		return err
	}

	title, body := notify.RenderContent(job.Type, s.actorName(ctx, job.ActorID))
	data := map[string]string{
		"type":        string(job.Type),
		"entityId":    job.EntityID,
		"entityModel": string(job.EntityModel),
	}

	for _, recipientID := range recipients {
		// 单个收件人的推送失败只记日志，不中断其余收件人
		if err := s.pushToRecipient(ctx, recipientID, title, body, data); err != nil {
			log.ErrorContext(ctx, "push notification error",
				"job_id", job.JobID, "recipient_id", recipientID, "err", err)
		}
	}

	return nil
}

// pushToRecipient 取出该用户全部设备 token 做一次组播，并剔除失效 token
func (s *dispatchServiceImpl) pushToRecipient(ctx context.Context, recipientID uint64, title, body string, data map[string]string) error {
	tokens, err := s.tokenRepo.GetTokens(ctx, recipientID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	result, err := s.gateway.SendMulticast(ctx, tokens, title, body, data)
	if err != nil {
		return err
	}

	if stale := result.StaleTokens(); len(stale) > 0 {
		if err = s.tokenRepo.RemoveTokens(ctx, recipientID, stale); err != nil {
			log.WarnContext(ctx, "prune stale push tokens error",
				"recipient_id", recipientID, "tokens", len(stale), "err", err)
		} else {
			log.InfoContext(ctx, "pruned stale push tokens",
				"recipient_id", recipientID, "tokens", len(stale))
		}
	}

	return nil
}

// actorName 取动作发起者的展示名，查不到就退回通用文案
func (s *dispatchServiceImpl) actorName(ctx context.Context, actorID uint64) string {
	if actorID == 0 {
		return ""
	}
	user, err := s.userRepo.GetUserById(ctx, actorID)
	if err != nil || user == nil {
		return ""
	}
	return user.FullName
}
