package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
	"invdash_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound   = errors.New("inventory item not found")
	ErrItemNameExists = errors.New("item name already in use")
)

// ItemRequest carries the writable fields of an inventory item for both
// creation and edits. Category resolves by name when CategoryID is absent;
// unknown names are created on the fly.
type ItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	CategoryID  *int64           `json:"category_id"`
	Quantity    int              `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	SKU         string           `json:"sku"`
	Barcode     string           `json:"barcode"`
	MinStock    int              `json:"min_stock"`
	MaxStock    *int             `json:"max_stock"`
}

// InventoryPage bundles everything the inventory screen needs.
type InventoryPage struct {
	Items      []models.InventoryItem
	Categories []models.Category
	Currency   string
}

// InventoryService handles inventory CRUD with audit logging.
type InventoryService interface {
	GetInventoryPage(userID int64) (*InventoryPage, error)
	GetItem(userID, itemID int64) (*models.InventoryItem, error)
	GetAvailableItems(userID int64) ([]models.AvailableItem, error)
	AddItem(userID int64, req ItemRequest) (*models.InventoryItem, error)
	EditItem(userID, itemID int64, req ItemRequest) (*models.InventoryItem, error)
	DeleteItem(userID, itemID int64) error
}

type inventoryService struct {
	invRepo      repositories.InventoryRepository
	categoryRepo repositories.CategoryRepository
	historyRepo  repositories.HistoryRepository
	settingRepo  repositories.SettingRepository
	db           *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	ir repositories.InventoryRepository,
	cr repositories.CategoryRepository,
	hr repositories.HistoryRepository,
	sr repositories.SettingRepository,
	db *sql.DB,
) InventoryService {
	return &inventoryService{
		invRepo:      ir,
		categoryRepo: cr,
		historyRepo:  hr,
		settingRepo:  sr,
		db:           db,
	}
}

// GetInventoryPage lists a tenant's items and categories with their currency.
func (s *inventoryService) GetInventoryPage(userID int64) (*InventoryPage, error) {
	items, err := s.invRepo.GetItems(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	categories, err := s.categoryRepo.GetCategories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	currency, err := s.settingRepo.GetSettingValue(userID, models.SettingCurrency)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to read currency setting: %w", err)
		}
		currency = models.DefaultCurrency
	}
	return &InventoryPage{Items: items, Categories: categories, Currency: currency}, nil
}

// GetItem fetches a single item scoped to the tenant.
func (s *inventoryService) GetItem(userID, itemID int64) (*models.InventoryItem, error) {
	item, err := s.invRepo.GetItemByID(userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	return item, nil
}

// GetAvailableItems lists in-stock items for the order form.
func (s *inventoryService) GetAvailableItems(userID int64) ([]models.AvailableItem, error) {
	items, err := s.invRepo.GetAvailableItems(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get available items: %w", err)
	}
	return items, nil
}

// AddItem creates an item, resolving (or creating) its category by name first.
// Both writes share one transaction.
func (s *inventoryService) AddItem(userID int64, req ItemRequest) (*models.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	categoryID, err := s.resolveCategory(tx, userID, req)
	if err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		Name:        name,
		Description: utils.NewNullString(req.Description),
		CategoryID:  categoryID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Cost:        toNullDecimal(req.Cost),
		SKU:         utils.NewNullString(req.SKU),
		Barcode:     utils.NewNullString(req.Barcode),
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		UserID:      userID,
	}

	if _, err := s.invRepo.CreateItem(tx, &item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, name)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item creation: %w", err)
	}
	return &item, nil
}

// EditItem rewrites an item and appends the audit rows: one stock movement row
// when the quantity changed, and one generic update row always. All writes
// share one transaction.
func (s *inventoryService) EditItem(userID, itemID int64, req ItemRequest) (*models.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}

	existing, err := s.invRepo.GetItemByID(userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item %d: %w", itemID, err)
	}

	if _, err := s.invRepo.FindItemIDByName(userID, name, itemID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNameExists, name)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check item name: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	categoryID, err := s.resolveCategory(tx, userID, req)
	if err != nil {
		return nil, err
	}

	updated := models.InventoryItem{
		ID:          itemID,
		Name:        name,
		Description: utils.NewNullString(req.Description),
		CategoryID:  categoryID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Cost:        toNullDecimal(req.Cost),
		SKU:         utils.NewNullString(req.SKU),
		Barcode:     utils.NewNullString(req.Barcode),
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		UserID:      userID,
	}

	if err := s.invRepo.UpdateItem(tx, &updated); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, name)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}

	if delta := req.Quantity - existing.Quantity; delta != 0 {
		action := models.ActionStockIncreased
		if delta < 0 {
			action = models.ActionStockDecreased
			delta = -delta
		}
		entry := models.HistoryEntry{
			UserID:   userID,
			Action:   action,
			Item:     &name,
			Details:  utils.NewNullString(fmt.Sprintf("%s for %s", action, name)),
			Quantity: &delta,
		}
		if _, err := s.historyRepo.CreateEntry(tx, &entry); err != nil {
			return nil, fmt.Errorf("failed to record stock change: %w", err)
		}
	}

	entry := models.HistoryEntry{
		UserID:  userID,
		Action:  models.ActionItemUpdated,
		Item:    &name,
		Details: utils.NewNullString(fmt.Sprintf("Updated item details for %s", name)),
	}
	if _, err := s.historyRepo.CreateEntry(tx, &entry); err != nil {
		return nil, fmt.Errorf("failed to record item update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item edit: %w", err)
	}
	return &updated, nil
}

// DeleteItem removes an item after detaching its order lines, and records the
// deletion in the audit log. All writes share one transaction.
func (s *inventoryService) DeleteItem(userID, itemID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	name, err := s.invRepo.GetItemNameByID(tx, userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to load item %d: %w", itemID, err)
	}

	if _, err := s.invRepo.NullOrderItemRefs(tx, itemID); err != nil {
		return fmt.Errorf("failed to detach order items: %w", err)
	}

	if err := s.invRepo.DeleteItem(tx, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}

	entry := models.HistoryEntry{
		UserID:  userID,
		Action:  models.ActionItemDeleted,
		Item:    &name,
		Details: utils.NewNullString(fmt.Sprintf("Deleted item: %s", name)),
	}
	if _, err := s.historyRepo.CreateEntry(tx, &entry); err != nil {
		return fmt.Errorf("failed to record item deletion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item deletion: %w", err)
	}
	return nil
}

// resolveCategory turns a request's category reference into a category ID.
// An explicit ID wins; otherwise a non-empty name is looked up and created
// when missing. Returns nil for uncategorized items.
func (s *inventoryService) resolveCategory(tx *sql.Tx, userID int64, req ItemRequest) (*int64, error) {
	if req.CategoryID != nil {
		return req.CategoryID, nil
	}
	name := strings.TrimSpace(req.Category)
	if name == "" {
		return nil, nil
	}

	id, err := s.categoryRepo.FindCategoryIDByName(tx, userID, name)
	if err == nil {
		return &id, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	category := models.Category{Name: name, UserID: userID}
	if _, err := s.categoryRepo.CreateCategory(tx, &category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return &category.ID, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
