package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"SchoolCare/internal/pkg/consts"
	"SchoolCare/internal/pkg/redis"
	"SchoolCare/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

// lowStockAlertWindow 同一物资低库存告警的静默窗口
const lowStockAlertWindow = time.Hour * 6

type InventoryService interface {
	CreateItem(ctx context.Context, createDTO *dto.CreateInventoryItemDTO) error
	GetItemList(ctx context.Context, page, pageSize int) ([]*model.InventoryItem, error)
	Dispense(ctx context.Context, itemID uint64, dispenseDTO *dto.DispenseDTO) error
}

type InventoryServiceImpl struct {
	inventoryRepo repository.InventoryRepo
	notifier      NotifierService
}

func NewInventoryService(inventoryRepo repository.InventoryRepo, notifier NotifierService) InventoryService {
	return &InventoryServiceImpl{
		inventoryRepo: inventoryRepo,
		notifier:      notifier,
	}
}

func (s *InventoryServiceImpl) CreateItem(ctx context.Context, createDTO *dto.CreateInventoryItemDTO) error {
	item := &model.InventoryItem{}
	if err := copier.Copy(item, createDTO); err != nil {
		return err
	}
	return s.inventoryRepo.CreateItem(ctx, item)
}

func (s *InventoryServiceImpl) GetItemList(ctx context.Context, page, pageSize int) ([]*model.InventoryItem, error) {
	return s.inventoryRepo.GetItemList(ctx, pageSize, (page-1)*pageSize)
}

// Dispense 发放物资，扣减后跌破阈值时触发补货预警
func (s *InventoryServiceImpl) Dispense(ctx context.Context, itemID uint64, dispenseDTO *dto.DispenseDTO) error {
	item, err := s.inventoryRepo.GetItemById(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrInventoryNotFound
	}

	rows, err := s.inventoryRepo.DecrementQuantity(ctx, itemID, dispenseDTO.Quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInventoryInsufficient
	}

	item.Quantity -= dispenseDTO.Quantity
	if item.Quantity <= item.Threshold {
		s.alertLowStock(ctx, item)
	}
	return nil
}

// alertLowStock 带静默窗口的预警，抢不到锁说明窗口内已告警过
func (s *InventoryServiceImpl) alertLowStock(ctx context.Context, item *model.InventoryItem) {
	key := consts.LowStockAlertLock + strconv.FormatUint(item.ID, 10)
	locked, err := redis.TryLock(ctx, key, 1, lowStockAlertWindow)
	if err != nil {
		log.WarnContext(ctx, "low stock alert lock error", "item_id", item.ID, "err", err)
		return
	}
	if !locked {
		return
	}
	s.notifier.InventoryLowStock(ctx, item)
}
