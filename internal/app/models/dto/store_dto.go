package dto

import "github.com/acodelab/backend/internal/app/models"

// PurchaseRequest buys a quantity of a catalog item
type PurchaseRequest struct {
	ItemID   int64 `json:"itemId" binding:"required,min=1"`
	Quantity int   `json:"quantity" binding:"required,min=1,max=100"`
}

// PurchaseResponse reports the completed purchase and the remaining balance
type PurchaseResponse struct {
	Purchase         models.Purchase `json:"purchase"`
	RemainingBalance int             `json:"remainingBalance"`
}

// CreateStoreItemRequest adds a catalog item (admin only)
type CreateStoreItemRequest struct {
	Name        string       `json:"name" binding:"required,min=3,max=100"`
	Description string       `json:"description" binding:"required"`
	Price       int          `json:"price" binding:"required,min=1"`
	ItemType    string       `json:"itemType" binding:"required,oneof=badge theme feature customization"`
	Rarity      string       `json:"rarity" binding:"required,oneof=common rare epic legendary"`
	MinRank     *models.Rank `json:"minRank"`
	Unique      bool         `json:"unique"`
}

// StoreItemListResponse represents a page of catalog items
type StoreItemListResponse struct {
	Items      []models.StoreItem `json:"items"`
	Pagination PaginationInfo     `json:"pagination"`
}

// InventoryResponse lists a user's owned items
type InventoryResponse struct {
	Inventory []models.InventoryItem `json:"inventory"`
}
