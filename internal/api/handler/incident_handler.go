package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	incidentSvc service.IncidentService
}

func NewIncidentHandler(incidentSvc service.IncidentService) *IncidentHandler {
	return &IncidentHandler{
		incidentSvc: incidentSvc,
	}
}

// CreateIncident 记录健康事件
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var createDTO dto.CreateIncidentDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := h.incidentSvc.CreateIncident(c.Request.Context(), userID, &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *IncidentHandler) GetIncidentList(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("student_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	list, err := h.incidentSvc.GetIncidentList(c.Request.Context(), studentID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
