package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// CatalogStore is the storage surface for the store.
type CatalogStore interface {
	CreateItem(ctx context.Context, item *models.StoreItem) error
	GetItemByID(ctx context.Context, id int64) (*models.StoreItem, error)
	ListItems(ctx context.Context, includeInactive bool, offset uint64, limit int) ([]models.StoreItem, int64, error)
	SetItemActive(ctx context.Context, id int64, active bool) error
	Purchase(ctx context.Context, userID int64, item *models.StoreItem, quantity int) (*models.Purchase, int, error)
	ListPurchases(ctx context.Context, userID int64) ([]models.Purchase, error)
	ListInventory(ctx context.Context, userID int64) ([]models.InventoryItem, error)
}

// StoreService handles the PCon store: browsing, purchasing, inventories
type StoreService struct {
	catalog CatalogStore
}

// NewStoreService creates a new StoreService
func NewStoreService(catalog CatalogStore) *StoreService {
	return &StoreService{catalog: catalog}
}

// ListItems retrieves a page of purchasable items
func (s *StoreService) ListItems(ctx context.Context, offset uint64, limit int) ([]models.StoreItem, int64, error) {
	return s.catalog.ListItems(ctx, false, offset, limit)
}

// GetItem retrieves a single catalog entry
func (s *StoreService) GetItem(ctx context.Context, id int64) (*models.StoreItem, error) {
	return s.catalog.GetItemByID(ctx, id)
}

// Purchase buys an item for the acting user. The checks that depend on live
// balances run inside the storage transaction; this layer enforces the
// catalog rules: the item must be active and the buyer must hold the item's
// minimum rank.
func (s *StoreService) Purchase(ctx context.Context, actor *models.Actor, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if actor.Kind != models.KindUser || actor.User == nil {
		return nil, apperrors.ErrPermissionDenied
	}

	item, err := s.catalog.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, apperrors.ErrItemInactive
	}
	if item.MinRank != nil && !models.RankAtLeast(actor.User.Rank, *item.MinRank) {
		return nil, apperrors.ErrInsufficientRank
	}

	purchase, remaining, err := s.catalog.Purchase(ctx, actor.ID, item, req.Quantity)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userID", actor.ID).
		Int64("itemID", item.ID).
		Int("quantity", req.Quantity).
		Int("totalCost", purchase.TotalCost).
		Msg("Store purchase completed")

	return &dto.PurchaseResponse{Purchase: *purchase, RemainingBalance: remaining}, nil
}

// PurchaseHistory lists the acting user's purchases
func (s *StoreService) PurchaseHistory(ctx context.Context, actor *models.Actor) ([]models.Purchase, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.catalog.ListPurchases(ctx, actor.ID)
}

// Inventory lists the acting user's owned items
func (s *StoreService) Inventory(ctx context.Context, actor *models.Actor) ([]models.InventoryItem, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.catalog.ListInventory(ctx, actor.ID)
}

// CreateItem adds a catalog entry; admin only
func (s *StoreService) CreateItem(ctx context.Context, actor *models.Actor, req *dto.CreateStoreItemRequest) (*models.StoreItem, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}

	item := &models.StoreItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ItemType:    req.ItemType,
		Rarity:      req.Rarity,
		MinRank:     req.MinRank,
		Unique:      req.Unique,
	}
	if err := s.catalog.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemActive toggles catalog availability; admin only
func (s *StoreService) SetItemActive(ctx context.Context, actor *models.Actor, id int64, active bool) error {
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return s.catalog.SetItemActive(ctx, id, active)
}
