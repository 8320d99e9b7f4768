package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeCatalog keeps the store catalog, purchases, and inventories in memory.
// Purchase mirrors the repository transaction: unique check, balance check,
// then the purchase row and the inventory upsert.
type fakeCatalog struct {
	accounts  *fakeAccounts
	items     map[int64]*models.StoreItem
	purchases []models.Purchase
	inventory map[int64]map[int64]int // userID -> itemID -> quantity
	nextID    int64
}

func newFakeCatalog(accounts *fakeAccounts) *fakeCatalog {
	return &fakeCatalog{
		accounts:  accounts,
		items:     make(map[int64]*models.StoreItem),
		inventory: make(map[int64]map[int64]int),
	}
}

func (f *fakeCatalog) addItem(item *models.StoreItem) *models.StoreItem {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item
	return item
}

func (f *fakeCatalog) CreateItem(_ context.Context, item *models.StoreItem) error {
	f.nextID++
	item.ID = f.nextID
	item.IsActive = true
	item.CreatedAt = time.Now()
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeCatalog) GetItemByID(_ context.Context, id int64) (*models.StoreItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeCatalog) ListItems(_ context.Context, includeInactive bool, offset uint64, limit int) ([]models.StoreItem, int64, error) {
	var out []models.StoreItem
	for _, item := range f.items {
		if includeInactive || item.IsActive {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.StoreItem{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeCatalog) SetItemActive(_ context.Context, id int64, active bool) error {
	item, ok := f.items[id]
	if !ok {
		return apperrors.ErrItemNotFound
	}
	item.IsActive = active
	return nil
}

func (f *fakeCatalog) Purchase(_ context.Context, userID int64, item *models.StoreItem, quantity int) (*models.Purchase, int, error) {
	if quantity <= 0 {
		return nil, 0, apperrors.ErrInvalidAmount
	}
	totalCost := item.Price * quantity

	owned := f.inventory[userID][item.ID]
	if item.Unique && (owned > 0 || quantity > 1) {
		return nil, 0, apperrors.ErrUniqueItem
	}

	user, ok := f.accounts.users[userID]
	if !ok {
		return nil, 0, apperrors.ErrUserNotFound
	}
	if user.PConPoints < totalCost {
		return nil, 0, apperrors.ErrInsufficientFunds
	}
	user.PConPoints -= totalCost

	f.nextID++
	purchase := models.Purchase{
		ID:          f.nextID,
		UserID:      userID,
		ItemID:      item.ID,
		Quantity:    quantity,
		TotalCost:   totalCost,
		PurchasedAt: time.Now(),
		Item:        item,
	}
	f.purchases = append(f.purchases, purchase)

	if f.inventory[userID] == nil {
		f.inventory[userID] = make(map[int64]int)
	}
	f.inventory[userID][item.ID] += quantity

	return &purchase, user.PConPoints, nil
}

func (f *fakeCatalog) ListPurchases(_ context.Context, userID int64) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			out = append(out, purchase)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListInventory(_ context.Context, userID int64) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for itemID, quantity := range f.inventory[userID] {
		out = append(out, models.InventoryItem{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: quantity,
			Item:     f.items[itemID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}
