package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageSvc: messageSvc,
	}
}

// SendMessage 发送私信
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var sendDTO dto.SendMessageDTO
	if err := c.ShouldBind(&sendDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	msg, err := h.messageSvc.SendMessage(c.Request.Context(), userID, &sendDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

// GetHistory 获取与某个用户的历史消息
func (h *MessageHandler) GetHistory(c *gin.Context) {
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := c.GetUint64("user_id")
	list, err := h.messageSvc.GetHistory(c.Request.Context(), userID, peerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
