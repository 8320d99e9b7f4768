package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/dberrors"
)

const storeItemColumns = `id, name, description, price, item_type, rarity, min_rank,
	is_unique, is_active, created_at, updated_at`

// StoreRepository handles database operations for the catalog, purchases,
// and inventories
type StoreRepository struct {
	db       *db.PostgresDB
	accounts *AccountRepository
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(database *db.PostgresDB, accounts *AccountRepository) *StoreRepository {
	return &StoreRepository{db: database, accounts: accounts}
}

func scanStoreItem(row pgx.Row) (*models.StoreItem, error) {
	var item models.StoreItem
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.ItemType,
		&item.Rarity, &item.MinRank, &item.Unique, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("error scanning store item: %w", err)
	}
	return &item, nil
}

// CreateItem adds a catalog entry
func (r *StoreRepository) CreateItem(ctx context.Context, item *models.StoreItem) error {
	query := `
		INSERT INTO store_items (name, description, price, item_type, rarity, min_rank, is_unique)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		item.Name, item.Description, item.Price, item.ItemType,
		item.Rarity, item.MinRank, item.Unique,
	).Scan(&item.ID, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.NewConflictError("store item name already exists")
		}
		return fmt.Errorf("error creating store item: %w", err)
	}
	return nil
}

// GetItemByID retrieves a catalog entry by primary key
func (r *StoreRepository) GetItemByID(ctx context.Context, id int64) (*models.StoreItem, error) {
	query := fmt.Sprintf("SELECT %s FROM store_items WHERE id = $1", storeItemColumns)
	return scanStoreItem(r.db.Pool.QueryRow(ctx, query, id))
}

// ListItems retrieves a page of active catalog entries
func (r *StoreRepository) ListItems(ctx context.Context, includeInactive bool, offset uint64, limit int) ([]models.StoreItem, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count FROM store_items
		WHERE is_active OR $1
		ORDER BY price ASC
		OFFSET $2 LIMIT $3`, storeItemColumns)

	rows, err := r.db.Pool.Query(ctx, query, includeInactive, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var items []models.StoreItem
	var total int64
	for rows.Next() {
		var item models.StoreItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.ItemType,
			&item.Rarity, &item.MinRank, &item.Unique, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		items = append(items, item)
	}
	return items, total, nil
}

// SetItemActive toggles catalog availability
func (r *StoreRepository) SetItemActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE store_items SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating store item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// Purchase debits the buyer, records the purchase, and upserts the inventory
// row in one transaction. The debit is conditional on the balance, so a
// failed debit rolls everything back. Returns the purchase and the remaining
// PCon balance.
func (r *StoreRepository) Purchase(ctx context.Context, userID int64, item *models.StoreItem, quantity int) (*models.Purchase, int, error) {
	if quantity <= 0 {
		return nil, 0, apperrors.ErrInvalidAmount
	}
	totalCost := item.Price * quantity

	var purchase models.Purchase
	var remaining int
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if item.Unique {
			var owned bool
			err := tx.QueryRow(ctx, `
				SELECT EXISTS(SELECT 1 FROM inventory WHERE user_id = $1 AND item_id = $2)`,
				userID, item.ID,
			).Scan(&owned)
			if err != nil {
				return fmt.Errorf("error checking inventory: %w", err)
			}
			if owned || quantity > 1 {
				return apperrors.ErrUniqueItem
			}
		}

		var err error
		remaining, err = r.accounts.SpendPCon(ctx, tx, userID, totalCost)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO purchases (user_id, item_id, quantity, total_cost)
			VALUES ($1, $2, $3, $4)
			RETURNING id, purchased_at`,
			userID, item.ID, quantity, totalCost,
		).Scan(&purchase.ID, &purchase.PurchasedAt)
		if err != nil {
			return fmt.Errorf("error recording purchase: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO inventory (user_id, item_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, item_id)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity`,
			userID, item.ID, quantity)
		if err != nil {
			return fmt.Errorf("error updating inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	purchase.UserID = userID
	purchase.ItemID = item.ID
	purchase.Quantity = quantity
	purchase.TotalCost = totalCost
	purchase.Item = item
	return &purchase, remaining, nil
}

// ListPurchases retrieves a user's purchase history, newest first
func (r *StoreRepository) ListPurchases(ctx context.Context, userID int64) ([]models.Purchase, error) {
	query := `
		SELECT p.id, p.user_id, p.item_id, p.quantity, p.total_cost, p.purchased_at,
		       i.id, i.name, i.description, i.price, i.item_type, i.rarity, i.min_rank,
		       i.is_unique, i.is_active, i.created_at, i.updated_at
		FROM purchases p
		JOIN store_items i ON i.id = p.item_id
		WHERE p.user_id = $1
		ORDER BY p.purchased_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		var item models.StoreItem
		err := rows.Scan(
			&p.ID, &p.UserID, &p.ItemID, &p.Quantity, &p.TotalCost, &p.PurchasedAt,
			&item.ID, &item.Name, &item.Description, &item.Price, &item.ItemType,
			&item.Rarity, &item.MinRank, &item.Unique, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		p.Item = &item
		purchases = append(purchases, p)
	}
	return purchases, nil
}

// ListInventory retrieves a user's owned items
func (r *StoreRepository) ListInventory(ctx context.Context, userID int64) ([]models.InventoryItem, error) {
	query := `
		SELECT inv.id, inv.user_id, inv.item_id, inv.quantity, inv.acquired_at,
		       i.id, i.name, i.description, i.price, i.item_type, i.rarity, i.min_rank,
		       i.is_unique, i.is_active, i.created_at, i.updated_at
		FROM inventory inv
		JOIN store_items i ON i.id = inv.item_id
		WHERE inv.user_id = $1
		ORDER BY inv.acquired_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var inventory []models.InventoryItem
	for rows.Next() {
		var inv models.InventoryItem
		var item models.StoreItem
		err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.ItemID, &inv.Quantity, &inv.AcquiredAt,
			&item.ID, &item.Name, &item.Description, &item.Price, &item.ItemType,
			&item.Rarity, &item.MinRank, &item.Unique, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		inv.Item = &item
		inventory = append(inventory, inv)
	}
	return inventory, nil
}
