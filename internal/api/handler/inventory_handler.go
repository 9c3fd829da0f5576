package handler

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/pkg/response"
	"SchoolCare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventorySvc service.InventoryService
}

func NewInventoryHandler(inventorySvc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventorySvc: inventorySvc,
	}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var createDTO dto.CreateInventoryItemDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.inventorySvc.CreateItem(c.Request.Context(), &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *InventoryHandler) GetItemList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	list, err := h.inventorySvc.GetItemList(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Dispense 发放库存物资
func (h *InventoryHandler) Dispense(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var dispenseDTO dto.DispenseDTO
	if err := c.ShouldBind(&dispenseDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.inventorySvc.Dispense(c.Request.Context(), itemID, &dispenseDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
