package service

import (
	"SchoolCare/internal/api/dto"
	pkgmongo "SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/repository"
	"context"
	"time"
)

type MessageService interface {
	SendMessage(ctx context.Context, senderID uint64, sendDTO *dto.SendMessageDTO) (*dto.MessageDTO, error)
	GetHistory(ctx context.Context, userID, peerID uint64, page, pageSize int) ([]*dto.MessageDTO, error)
}

type MessageServiceImpl struct {
	messageRepo pkgmongo.MessageRepo
	userRepo    repository.UserRepo
	notifier    NotifierService
}

func NewMessageService(messageRepo pkgmongo.MessageRepo, userRepo repository.UserRepo, notifier NotifierService) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// SendMessage 发送私信，落库成功后通知接收方
func (s *MessageServiceImpl) SendMessage(ctx context.Context, senderID uint64, sendDTO *dto.SendMessageDTO) (*dto.MessageDTO, error) {
	if senderID == sendDTO.RecipientID {
		return nil, ErrTargetUserInvalid
	}

	recipient, err := s.userRepo.GetUserById(ctx, sendDTO.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil || recipient.IsDelete {
		return nil, ErrTargetUserInvalid
	}

	msg := &pkgmongo.Message{
		SenderID:    senderID,
		RecipientID: sendDTO.RecipientID,
		Content:     sendDTO.Content,
		CreatedAt:   time.Now(),
	}
	msgID, err := s.messageRepo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.notifier.ChatMessage(ctx, senderID, sendDTO.RecipientID, msgID)

	return &dto.MessageDTO{
		ID:          msgID,
		SenderID:    senderID,
		RecipientID: sendDTO.RecipientID,
		Content:     sendDTO.Content,
		CreatedAt:   msg.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *MessageServiceImpl) GetHistory(ctx context.Context, userID, peerID uint64, page, pageSize int) ([]*dto.MessageDTO, error) {
	list, err := s.messageRepo.GetHistory(ctx, userID, peerID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageDTO, 0, len(list))
	for _, m := range list {
		res = append(res, &dto.MessageDTO{
			ID:          m.ID.Hex(),
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Content:     m.Content,
			CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}
