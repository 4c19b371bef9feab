package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invdash_backend/internal/models"
)

// InventoryRepository defines the interface for inventory-related database operations.
type InventoryRepository interface {
	GetItems(userID int64) ([]models.InventoryItem, error)
	GetItemByID(userID, itemID int64) (*models.InventoryItem, error)
	GetItemNameByID(executor SQLExecutor, userID, itemID int64) (string, error)
	GetAvailableItems(userID int64) ([]models.AvailableItem, error)
	GetLowStockItems(userID int64, limit int) ([]models.InventoryItem, error)
	FindItemIDByName(userID int64, name string, excludeItemID int64) (int64, error)
	CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	AdjustQuantity(executor SQLExecutor, userID, itemID int64, delta int) error
	DeleteItem(executor SQLExecutor, userID, itemID int64) error
	NullOrderItemRefs(executor SQLExecutor, itemID int64) (int64, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const itemColumns = `i.id, i.name, i.description, i.category_id, i.quantity, i.price, i.cost,
	       i.sku, i.barcode, i.min_stock, i.max_stock, i.user_id, i.created_at, i.updated_at`

func scanItem(row interface{ Scan(...interface{}) error }, item *models.InventoryItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Description, &item.CategoryID, &item.Quantity,
		&item.Price, &item.Cost, &item.SKU, &item.Barcode, &item.MinStock, &item.MaxStock,
		&item.UserID, &item.CreatedAt, &item.UpdatedAt,
	)
}

// GetItems lists a tenant's items with category names, ordered by item name.
func (r *inventoryRepository) GetItems(userID int64) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT ` + itemColumns + `, c.name as category_name
	          FROM inventory i
	          LEFT JOIN categories c ON i.category_id = c.id
	          WHERE i.user_id = $1
	          ORDER BY i.name ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		var categoryName sql.NullString
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.CategoryID, &item.Quantity,
			&item.Price, &item.Cost, &item.SKU, &item.Barcode, &item.MinStock, &item.MaxStock,
			&item.UserID, &item.CreatedAt, &item.UpdatedAt,
			&categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		if categoryName.Valid {
			name := categoryName.String
			item.CategoryName = &name
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetItemByID fetches a single item scoped to the tenant.
func (r *inventoryRepository) GetItemByID(userID, itemID int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	var categoryName sql.NullString
	query := `SELECT ` + itemColumns + `, c.name as category_name
	          FROM inventory i
	          LEFT JOIN categories c ON i.category_id = c.id
	          WHERE i.id = $1 AND i.user_id = $2`

	err := r.db.QueryRow(query, itemID, userID).Scan(
		&item.ID, &item.Name, &item.Description, &item.CategoryID, &item.Quantity,
		&item.Price, &item.Cost, &item.SKU, &item.Barcode, &item.MinStock, &item.MaxStock,
		&item.UserID, &item.CreatedAt, &item.UpdatedAt,
		&categoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	if categoryName.Valid {
		name := categoryName.String
		item.CategoryName = &name
	}
	return item, nil
}

// GetItemNameByID resolves the canonical name of a tenant's item.
// Used inside the order placement transaction.
func (r *inventoryRepository) GetItemNameByID(executor SQLExecutor, userID, itemID int64) (string, error) {
	var name string
	err := executor.QueryRow(`SELECT name FROM inventory WHERE id = $1 AND user_id = $2`, itemID, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: resolving item name for ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return name, nil
}

// GetAvailableItems lists in-stock items for the order form.
func (r *inventoryRepository) GetAvailableItems(userID int64) ([]models.AvailableItem, error) {
	items := []models.AvailableItem{}
	query := `SELECT i.id, i.name, i.quantity, i.price, c.name as category_name
	          FROM inventory i
	          LEFT JOIN categories c ON i.category_id = c.id
	          WHERE i.user_id = $1 AND i.quantity > 0
	          ORDER BY i.name ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying available items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.AvailableItem
		var categoryName sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &categoryName); err != nil {
			return nil, fmt.Errorf("%w: scanning available item: %v", ErrDatabaseError, err)
		}
		item.CategoryName = "Uncategorized"
		if categoryName.Valid {
			item.CategoryName = categoryName.String
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating available item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetLowStockItems lists items at or below their minimum stock threshold,
// lowest quantity first. Items already at zero (or negative) are excluded.
func (r *inventoryRepository) GetLowStockItems(userID int64, limit int) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT ` + itemColumns + `
	          FROM inventory i
	          WHERE i.user_id = $1 AND i.quantity <= i.min_stock AND i.quantity > 0
	          ORDER BY i.quantity ASC
	          LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// FindItemIDByName looks up another item of the same tenant carrying the given
// name. excludeItemID is skipped so an item can keep its own name on edit.
func (r *inventoryRepository) FindItemIDByName(userID int64, name string, excludeItemID int64) (int64, error) {
	var id int64
	query := `SELECT id FROM inventory WHERE name = $1 AND user_id = $2 AND id != $3`
	err := r.db.QueryRow(query, name, userID, excludeItemID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: finding item by name %q: %v", ErrDatabaseError, name, err)
	}
	return id, nil
}

// CreateItem inserts a new inventory item. Duplicate (name, user) pairs are
// rejected by the unique constraint.
func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory
	            (name, description, category_id, quantity, price, cost, sku, barcode,
	             min_stock, max_stock, user_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		item.Name, item.Description, item.CategoryID, item.Quantity, item.Price, item.Cost,
		item.SKU, item.Barcode, item.MinStock, item.MaxStock, item.UserID,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: item %q", ErrDuplicateKey, item.Name)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// UpdateItem rewrites all editable columns of an item scoped to its tenant.
func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory
	          SET name = $1, description = $2, category_id = $3, quantity = $4,
	              price = $5, cost = $6, sku = $7, barcode = $8,
	              min_stock = $9, max_stock = $10, updated_at = $11
	          WHERE id = $12 AND user_id = $13`

	result, err := executor.Exec(query,
		item.Name, item.Description, item.CategoryID, item.Quantity,
		item.Price, item.Cost, item.SKU, item.Barcode,
		item.MinStock, item.MaxStock, time.Now(),
		item.ID, item.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q", ErrDuplicateKey, item.Name)
		}
		return fmt.Errorf("%w: updating item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for item update: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustQuantity shifts an item's quantity by delta (negative for sales).
// No floor check: quantity may go negative.
func (r *inventoryRepository) AdjustQuantity(executor SQLExecutor, userID, itemID int64, delta int) error {
	query := `UPDATE inventory SET quantity = quantity + $1 WHERE id = $2 AND user_id = $3`
	result, err := executor.Exec(query, delta, itemID, userID)
	if err != nil {
		return fmt.Errorf("%w: adjusting quantity for item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for quantity adjustment: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item scoped to its tenant.
func (r *inventoryRepository) DeleteItem(executor SQLExecutor, userID, itemID int64) error {
	result, err := executor.Exec(`DELETE FROM inventory WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for item delete: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NullOrderItemRefs detaches order lines from an item that is about to be
// deleted. The denormalized item_name on each line remains authoritative.
func (r *inventoryRepository) NullOrderItemRefs(executor SQLExecutor, itemID int64) (int64, error) {
	result, err := executor.Exec(`UPDATE order_items SET item_id = NULL WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: detaching order items from item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for order item detach: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}
