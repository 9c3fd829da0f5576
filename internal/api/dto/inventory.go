package dto

type CreateInventoryItemDTO struct {
	Name      string `json:"name" binding:"required,max=255"`
	Unit      string `json:"unit" binding:"max=50"`
	Quantity  int    `json:"quantity" binding:"min=0"`
	Threshold int    `json:"threshold" binding:"min=0"`
}

// DispenseDTO 发放库存物资
type DispenseDTO struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
