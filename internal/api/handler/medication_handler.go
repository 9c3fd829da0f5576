package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MedicationHandler struct {
	medicationSvc service.MedicationService
}

func NewMedicationHandler(medicationSvc service.MedicationService) *MedicationHandler {
	return &MedicationHandler{
		medicationSvc: medicationSvc,
	}
}

// CreateRequest 家长发起送药申请
func (h *MedicationHandler) CreateRequest(c *gin.Context) {
	var createDTO dto.CreateMedicationDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err := h.medicationSvc.CreateRequest(c.Request.Context(), userID, &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ScheduleRequest 校医受理申请并排期
func (h *MedicationHandler) ScheduleRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var scheduleDTO dto.ScheduleMedicationDTO
	if err := c.ShouldBind(&scheduleDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.medicationSvc.ScheduleRequest(c.Request.Context(), requestID, userID, &scheduleDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
