package service

import (
	"SchoolCare/internal/api/dto"
	pkgmongo "SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// NotificationBoxService 消息中心查询面，全部操作按登录用户收口
type NotificationBoxService interface {
	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
	GetFailedJobs(ctx context.Context, page, pageSize int) ([]*pkgmongo.FailedJob, error)
}

type notificationBoxServiceImpl struct {
	notificationRepo pkgmongo.NotificationRepo
	failedJobRepo    pkgmongo.FailedJobRepo
	userRepo         repository.UserRepo
}

func NewNotificationBoxService(notificationRepo pkgmongo.NotificationRepo, failedJobRepo pkgmongo.FailedJobRepo, userRepo repository.UserRepo) NotificationBoxService {
	return &notificationBoxServiceImpl{
		notificationRepo: notificationRepo,
		failedJobRepo:    failedJobRepo,
		userRepo:         userRepo,
	}
}

// GetNotificationList 获取通知列表并补全发起者信息
func (s *notificationBoxServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.notificationRepo.GetListByRecipient(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)

		// 补全发起者展示名 (ActorID 为 0 代表系统触发)
		if m.ActorID > 0 {
			user, err := s.userRepo.GetUserById(ctx, m.ActorID)
			if err == nil && user != nil {
				d.ActorName = user.FullName
			}
		} else {
			d.ActorName = "系统通知"
		}

		res = append(res, d)
	}

	return res, nil
}

// GetUnreadCount 获取未读数
func (s *notificationBoxServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读，重复调用幂等
func (s *notificationBoxServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.notificationRepo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}

	if notice.RecipientID != userID {
		return UnauthorizedError
	}

	if notice.IsRead {
		return nil
	}

	return s.notificationRepo.MarkAsRead(ctx, userID, objectID)
}

// MarkAllRead 一键已读
func (s *notificationBoxServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

// GetFailedJobs 运维侧查看重试耗尽的死信任务
func (s *notificationBoxServiceImpl) GetFailedJobs(ctx context.Context, page, pageSize int) ([]*pkgmongo.FailedJob, error) {
	return s.failedJobRepo.GetList(ctx, int64(pageSize), int64((page-1)*pageSize))
}
