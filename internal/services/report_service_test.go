package services_test

import (
	"testing"
	"time"

	"invdash_backend/internal/repositories"
	"invdash_backend/internal/services"
	"invdash_backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSalesReport(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")
	itemID := testutil.SeedItem(t, db, userID, "Cola", 100, "10.00")

	orderSvc := newOrderService(db)
	_, err := orderSvc.PlaceOrder(userID, services.PlaceOrderRequest{
		Customer: "Asha",
		Lines:    []services.OrderLine{{ItemID: itemID, Quantity: 3, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	svc := services.NewReportService(
		repositories.NewAnalyticsRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewSettingRepository(db),
	)
	data, filename, err := svc.BuildSalesReport(userID)
	require.NoError(t, err)

	assert.Equal(t, "sales_report_"+time.Now().Format("2006-01-02")+".pdf", filename)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
