package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConsentHandler struct {
	consentSvc service.ConsentService
}

func NewConsentHandler(consentSvc service.ConsentService) *ConsentHandler {
	return &ConsentHandler{
		consentSvc: consentSvc,
	}
}

// SubmitConsent 家长提交知情同意回执
func (h *ConsentHandler) SubmitConsent(c *gin.Context) {
	var submitDTO dto.SubmitConsentDTO
	if err := c.ShouldBind(&submitDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := h.consentSvc.SubmitConsent(c.Request.Context(), userID, &submitDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetConsentList 按活动查看回执收集情况
func (h *ConsentHandler) GetConsentList(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	list, err := h.consentSvc.GetConsentList(c.Request.Context(), campaignID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
