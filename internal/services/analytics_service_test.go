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

func newAnalyticsService(db *sql.DB) services.AnalyticsService {
	return services.NewAnalyticsService(
		repositories.NewAnalyticsRepository(db),
		repositories.NewInventoryRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewHistoryRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewSettingRepository(db),
	)
}

func TestCategoryDataPlaceholderWhenEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := newAnalyticsService(db)
	series, err := svc.GetCategoryData(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.PlaceholderNoData}, series.Labels)
	assert.Equal(t, []float64{0}, series.PriceData)
	assert.Equal(t, []float64{0}, series.QuantityData)
}

func TestCategoryDataGroupsAndSortsByValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	testutil.SeedItem(t, db, userID, "Cola", 10, "10.00")
	testutil.SeedItem(t, db, userID, "Chips", 100, "25.00")

	svc := newAnalyticsService(db)
	series, err := svc.GetCategoryData(userID)
	require.NoError(t, err)

	// Both items are uncategorized; they fold into one bucket.
	require.Equal(t, []string{"Uncategorized"}, series.Labels)
	assert.InDelta(t, 2600.0, series.PriceData[0], 0.001)
	assert.InDelta(t, 110.0, series.QuantityData[0], 0.001)
}

func TestInventoryDataItemPlaceholder(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := newAnalyticsService(db)
	_, itemSeries, err := svc.GetInventoryData(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.PlaceholderNoItems}, itemSeries.Labels)
}

func TestSalesDataHistogramHas24Buckets(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	orderSvc := newOrderService(db)
	_, err := orderSvc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 2, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	svc := newAnalyticsService(db)
	charts, err := svc.GetSalesData(userID)
	require.NoError(t, err)

	require.Len(t, charts.Today.Labels, 24)
	require.Len(t, charts.Today.Data, 24)
	assert.Equal(t, "00:00", charts.Today.Labels[0])
	assert.Equal(t, "23:00", charts.Today.Labels[23])

	var revenue, count float64
	for i := range charts.Today.Data {
		revenue += charts.Today.Data[i]
		count += charts.Today.QuantityData[i]
	}
	assert.InDelta(t, 20.0, revenue, 0.001, "the order lands in exactly one bucket")
	assert.InDelta(t, 1.0, count, 0.001)

	assert.Equal(t, []string{"Cola"}, charts.Products.Labels)
	assert.Equal(t, []float64{20}, charts.Products.RevenueData)
}

func TestForecastProjectsWeeklyDemand(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	orderSvc := newOrderService(db)
	_, err := orderSvc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 6, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	svc := newAnalyticsService(db)
	series, err := svc.GetForecast(userID)
	require.NoError(t, err)

	require.Equal(t, []string{"Cola"}, series.Labels)
	// 6 units over 1 sale day: 6/1 * 7 = 42 projected for next week.
	assert.InDelta(t, 42.0, series.Data[0], 0.001)
}

func TestForecastPlaceholderWhenNoSales(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := newAnalyticsService(db)
	series, err := svc.GetForecast(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.PlaceholderNoData}, series.Labels)
	assert.Equal(t, []float64{0}, series.Data)
}

func TestDashboardSummaryCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	orderSvc := newOrderService(db)
	_, err := orderSvc.PlaceOrder(userID, services.PlaceOrderRequest{
		Lines: []services.OrderLine{{ItemID: itemID, Quantity: 2, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	svc := newAnalyticsService(db)
	summary, err := svc.GetDashboard(userID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.InventoryCount)
	assert.Equal(t, 1, summary.OrdersCount)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromInt(20)), "total sales was %s", summary.TotalSales)
	assert.True(t, summary.StockValue.Equal(decimal.NewFromInt(980)), "stock value was %s", summary.StockValue)
	require.Len(t, summary.RecentOrders, 1)
	assert.Equal(t, "shop", summary.CompanyName, "falls back to username without a company name")
}
