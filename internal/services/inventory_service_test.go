package services_test

import (
	"database/sql"
	"testing"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
	"invdash_backend/internal/services"
	"invdash_backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(db *sql.DB) services.InventoryService {
	return services.NewInventoryService(
		repositories.NewInventoryRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewHistoryRepository(db),
		repositories.NewSettingRepository(db),
		db,
	)
}

func TestAddItemCreatesCategoryByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := newInventoryService(db)
	item, err := svc.AddItem(userID, services.ItemRequest{
		Name:     "Cola",
		Category: "Beverages",
		Quantity: 100,
		Price:    decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, item.CategoryID)

	var categoryName string
	require.NoError(t, db.QueryRow(`SELECT name FROM categories WHERE id = $1`, *item.CategoryID).Scan(&categoryName))
	assert.Equal(t, "Beverages", categoryName)

	// Same name again reuses the category.
	second, err := svc.AddItem(userID, services.ItemRequest{
		Name:     "Fanta",
		Category: "Beverages",
		Quantity: 10,
		Price:    decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, *item.CategoryID, *second.CategoryID)
}

func TestAddItemRejectsDuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newInventoryService(db)
	_, err := svc.AddItem(userID, services.ItemRequest{
		Name:     "Cola",
		Quantity: 1,
		Price:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrItemNameExists)
}

func TestEditItemRecordsStockChangeAndUpdateRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newInventoryService(db)
	_, err := svc.EditItem(userID, itemID, services.ItemRequest{
		Name:     "Cola",
		Quantity: 80,
		Price:    decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	historyRepo := repositories.NewHistoryRepository(db)
	entries, err := historyRepo.GetHistory(userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	actions := []string{entries[0].Action, entries[1].Action}
	assert.Contains(t, actions, models.ActionStockDecreased)
	assert.Contains(t, actions, models.ActionItemUpdated)
	for _, e := range entries {
		if e.Action == models.ActionStockDecreased {
			require.NotNil(t, e.Quantity)
			assert.Equal(t, 20, *e.Quantity, "stock rows carry the absolute delta")
		}
	}
}

func TestEditItemWithoutQuantityChangeRecordsOnlyUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newInventoryService(db)
	_, err := svc.EditItem(userID, itemID, services.ItemRequest{
		Name:     "Cola Zero",
		Quantity: 100,
		Price:    decimal.RequireFromString("11.00"),
	})
	require.NoError(t, err)

	entries, err := repositories.NewHistoryRepository(db).GetHistory(userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionItemUpdated, entries[0].Action)
}

func TestEditItemRejectsRenameCollision(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")
	testutil.SeedItem(t, db, userID, "Chips", 50, "25.00")

	svc := newInventoryService(db)
	_, err := svc.EditItem(userID, itemID, services.ItemRequest{
		Name:     "Chips",
		Quantity: 100,
		Price:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrItemNameExists)
}

func TestEditItemNotOwned(t *testing.T) {
	db := testutil.NewTestDB(t)
	ownerID := testutil.SeedUser(t, db, "owner@example.com", "owner")
	otherID := testutil.SeedUser(t, db, "other@example.com", "other")
	itemID := testutil.SeedItem(t, db, ownerID, "Cola", 100, "10.00")

	svc := newInventoryService(db)
	_, err := svc.EditItem(otherID, itemID, services.ItemRequest{
		Name:     "Cola",
		Quantity: 1,
		Price:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	_, err = svc.GetItem(otherID, itemID)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestDeleteItemDetachesOrderLinesAndKeepsNames(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	orderSvc := newOrderService(db)
	result, err := orderSvc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 2, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	svc := newInventoryService(db)
	require.NoError(t, svc.DeleteItem(userID, itemID))

	var refID sql.NullInt64
	var itemName string
	err = db.QueryRow(`SELECT item_id, item_name FROM order_items WHERE order_id = $1`, result.OrderID).Scan(&refID, &itemName)
	require.NoError(t, err)
	assert.False(t, refID.Valid, "deleted items leave a NULL ref")
	assert.Equal(t, "Cola", itemName, "denormalized name survives the delete")

	entries, err := repositories.NewHistoryRepository(db).GetHistory(userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionItemDeleted, entries[0].Action)

	require.ErrorIs(t, svc.DeleteItem(userID, itemID), services.ErrItemNotFound)
}
