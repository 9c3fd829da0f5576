package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignSvc service.CampaignService
}

func NewCampaignHandler(campaignSvc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignSvc: campaignSvc,
	}
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var createDTO dto.CreateCampaignDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := h.campaignSvc.CreateCampaign(c.Request.Context(), userID, &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CampaignHandler) GetCampaignList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	list, err := h.campaignSvc.GetCampaignList(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// AnnounceCampaign 发布活动并向目标家长推送通知
func (h *CampaignHandler) AnnounceCampaign(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.campaignSvc.AnnounceCampaign(c.Request.Context(), campaignID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RecordResult 录入活动结果
func (h *CampaignHandler) RecordResult(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var resultDTO dto.RecordResultDTO
	if err := c.ShouldBind(&resultDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.campaignSvc.RecordResult(c.Request.Context(), campaignID, userID, &resultDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
