package models

import "time"

// StoreItem defines a purchasable catalog entry priced in PCon points.
type StoreItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"` // PCon
	ItemType    string    `json:"itemType" db:"item_type"` // badge, theme, feature, customization
	Rarity      string    `json:"rarity" db:"rarity"`      // common, rare, epic, legendary
	MinRank     *Rank     `json:"minRank,omitempty" db:"min_rank"`
	Unique      bool      `json:"unique" db:"is_unique"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Purchase records PCon spent against a catalog item.
type Purchase struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	ItemID      int64     `json:"itemId" db:"item_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	TotalCost   int       `json:"totalCost" db:"total_cost"`
	PurchasedAt time.Time `json:"purchasedAt" db:"purchased_at"`
	Item        *StoreItem `json:"item,omitempty"` // relation, no db tag
}

// InventoryItem is an owned item; quantity is additive across purchases.
type InventoryItem struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	ItemID     int64      `json:"itemId" db:"item_id"`
	Quantity   int        `json:"quantity" db:"quantity"`
	AcquiredAt time.Time  `json:"acquiredAt" db:"acquired_at"`
	Item       *StoreItem `json:"item,omitempty"` // relation, no db tag
}
