package services_test

import (
	"database/sql"
	"testing"

	"invdash_backend/internal/repositories"
	"invdash_backend/internal/services"
	"invdash_backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(db *sql.DB) services.OrderService {
	return services.NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewInventoryRepository(db),
		repositories.NewSettingRepository(db),
		db,
	)
}

func TestPlaceOrderComputesTotalAndDecrementsStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	colaID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")
	chipsID := testutil.SeedItem(t, db, userID, "Chips", 50, "25.50")

	svc := newOrderService(db)
	result, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{
		Customer: "Asha",
		Lines: []services.OrderLine{
			{ItemID: colaID, Quantity: 3, Price: decimal.RequireFromString("10.00")},
			{ItemID: chipsID, Quantity: 2, Price: decimal.RequireFromString("25.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("81.00")), "total was %s", result.Total)

	var lineCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, result.OrderID).Scan(&lineCount))
	assert.Equal(t, 2, lineCount)

	var colaQty, chipsQty int
	require.NoError(t, db.QueryRow(`SELECT quantity FROM inventory WHERE id = $1`, colaID).Scan(&colaQty))
	require.NoError(t, db.QueryRow(`SELECT quantity FROM inventory WHERE id = $1`, chipsID).Scan(&chipsQty))
	assert.Equal(t, 97, colaQty)
	assert.Equal(t, 48, chipsQty)
}

func TestPlaceOrderNumbersIncreaseWithinDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newOrderService(db)
	line := []services.OrderLine{{ItemID: itemID, Quantity: 1, Price: decimal.NewFromInt(10)}}

	first, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{Lines: line})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{Lines: line})
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d{8}-0001$`, first.OrderNumber)
	assert.Regexp(t, `^ORD-\d{8}-0002$`, second.OrderNumber)
}

func TestPlaceOrderNumbersAreTenantScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	aliceID := testutil.SeedUser(t, db, "alice@example.com", "alice")
	bobID := testutil.SeedUser(t, db, "bob@example.com", "bob")
	aliceItem := testutil.SeedItem(t, db, aliceID, "Cola", 100, "10.00")
	bobItem := testutil.SeedItem(t, db, bobID, "Chips", 100, "25.00")

	svc := newOrderService(db)
	first, err := svc.PlaceOrder(aliceID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: aliceItem, Quantity: 1, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(bobID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: bobItem, Quantity: 1, Price: decimal.NewFromInt(25)}},
	})
	require.NoError(t, err)

	// Each tenant starts its own daily sequence.
	assert.Regexp(t, `-0001$`, first.OrderNumber)
	assert.Regexp(t, `-0001$`, second.OrderNumber)
}

func TestPlaceOrderRollsBackOnUnknownItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{
			{ItemID: itemID, Quantity: 5, Price: decimal.NewFromInt(10)},
			{ItemID: 9999, Quantity: 1, Price: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, services.ErrOrderItemNotFound)

	var orderCount, lineCount, qty int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orderCount))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&lineCount))
	require.NoError(t, db.QueryRow(`SELECT quantity FROM inventory WHERE id = $1`, itemID).Scan(&qty))
	assert.Zero(t, orderCount, "rollback must remove the order row")
	assert.Zero(t, lineCount, "rollback must remove the order item rows")
	assert.Equal(t, 100, qty, "rollback must restore the stock level")
}

func TestPlaceOrderCrossTenantItemRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	ownerID := testutil.SeedUser(t, db, "owner@example.com", "owner")
	otherID := testutil.SeedUser(t, db, "other@example.com", "other")
	itemID := testutil.SeedItem(t, db, ownerID, "Cola", 100, "10.00")

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(otherID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 1, Price: decimal.NewFromInt(10)}},
	})
	require.ErrorIs(t, err, services.ErrOrderItemNotFound)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newOrderService(db)

	_, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{})
	assert.ErrorIs(t, err, services.ErrEmptyOrder)

	_, err = svc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 0, Price: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestPlaceOrderDefaultsCustomerAndStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newOrderService(db)
	result, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 1, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	var customer, status string
	require.NoError(t, db.QueryRow(`SELECT customer, status FROM orders WHERE id = $1`, result.OrderID).Scan(&customer, &status))
	assert.Equal(t, services.DefaultCustomer, customer)
	assert.Equal(t, services.StatusPending, status)
}

func TestGetOrdersReturnsItemsAndCurrency(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 3, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	orders, currency, err := svc.GetOrders(userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Cola", orders[0].Items[0].ItemName)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)
	assert.Equal(t, "₹", currency, "default currency applies when no setting row exists")
}
