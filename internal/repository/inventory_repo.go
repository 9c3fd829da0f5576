package repository

import (
	"SchoolCare/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type InventoryRepo interface {
	GetItemById(ctx context.Context, id uint64) (*model.InventoryItem, error)
	GetItemList(ctx context.Context, limit, offset int) ([]*model.InventoryItem, error)
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	DecrementQuantity(ctx context.Context, id uint64, amount int) (int64, error)
}

type InventoryRepoImpl struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepo {
	return &InventoryRepoImpl{db: db}
}

func (s *InventoryRepoImpl) GetItemById(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	result := s.db.WithContext(ctx).First(item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return item, nil
}

func (s *InventoryRepoImpl) GetItemList(ctx context.Context, limit, offset int) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	result := s.db.WithContext(ctx).
		Order("name asc").
		Limit(limit).
		Offset(offset).
		Find(&items)

	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (s *InventoryRepoImpl) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// DecrementQuantity 原子扣减，数量不足时影响行数为0
func (s *InventoryRepoImpl) DecrementQuantity(ctx context.Context, id uint64, amount int) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
