package model

import (
	"time"
)

type InventoryItem struct {
	ID        uint64    `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit      string    `gorm:"type:varchar(50)" json:"unit"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Threshold int       `gorm:"not null;default:0" json:"threshold"` // 低于该值触发补货预警
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
