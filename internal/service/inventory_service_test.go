package service

import (
	"SchoolCare/internal/api/dto"
	"SchoolCare/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventoryRepo struct {
	items         map[uint64]*model.InventoryItem
	created       []*model.InventoryItem
	decrementRows int64
}

func (f *fakeInventoryRepo) GetItemById(_ context.Context, id uint64) (*model.InventoryItem, error) {
	return f.items[id], nil
}

func (f *fakeInventoryRepo) GetItemList(_ context.Context, _, _ int) ([]*model.InventoryItem, error) {
	var list []*model.InventoryItem
	for _, item := range f.items {
		list = append(list, item)
	}
	return list, nil
}

func (f *fakeInventoryRepo) CreateItem(_ context.Context, item *model.InventoryItem) error {
	f.created = append(f.created, item)
	return nil
}

func (f *fakeInventoryRepo) DecrementQuantity(_ context.Context, _ uint64, _ int) (int64, error) {
	return f.decrementRows, nil
}

func newInventoryFixture() (*fakeInventoryRepo, *fakeNotifier, InventoryService) {
	inventoryRepo := &fakeInventoryRepo{
		items:         make(map[uint64]*model.InventoryItem),
		decrementRows: 1,
	}
	notifier := &fakeNotifier{}
	svc := NewInventoryService(inventoryRepo, notifier)
	return inventoryRepo, notifier, svc
}

func TestInventoryCreateItem(t *testing.T) {
	inventoryRepo, _, svc := newInventoryFixture()

	err := svc.CreateItem(context.Background(), &dto.CreateInventoryItemDTO{
		Name:      "布洛芬",
		Unit:      "盒",
		Quantity:  50,
		Threshold: 10,
	})

	require.NoError(t, err)
	require.Len(t, inventoryRepo.created, 1)
	assert.Equal(t, "布洛芬", inventoryRepo.created[0].Name)
	assert.Equal(t, 50, inventoryRepo.created[0].Quantity)
}

func TestInventoryDispenseUnknownItem(t *testing.T) {
	_, notifier, svc := newInventoryFixture()

	err := svc.Dispense(context.Background(), 404, &dto.DispenseDTO{Quantity: 1})

	assert.ErrorIs(t, err, ErrInventoryNotFound)
	assert.Empty(t, notifier.lowStocks)
}

func TestInventoryDispenseInsufficientStock(t *testing.T) {
	inventoryRepo, notifier, svc := newInventoryFixture()
	inventoryRepo.items[1] = &model.InventoryItem{ID: 1, Name: "创可贴", Quantity: 2, Threshold: 1}
	inventoryRepo.decrementRows = 0

	err := svc.Dispense(context.Background(), 1, &dto.DispenseDTO{Quantity: 5})

	assert.ErrorIs(t, err, ErrInventoryInsufficient)
	assert.Empty(t, notifier.lowStocks)
}

func TestInventoryDispenseAboveThresholdNoAlert(t *testing.T) {
	inventoryRepo, notifier, svc := newInventoryFixture()
	inventoryRepo.items[1] = &model.InventoryItem{ID: 1, Name: "碘伏", Quantity: 20, Threshold: 5}

	err := svc.Dispense(context.Background(), 1, &dto.DispenseDTO{Quantity: 3})

	require.NoError(t, err)
	assert.Empty(t, notifier.lowStocks)
}
