package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder labels substituted when a tenant has no data to aggregate.
const (
	PlaceholderNoData  = "No Data"
	PlaceholderNoItems = "No Items"
)

// Series is a generic single-valued chart series.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ValueQuantitySeries carries parallel value and quantity arrays per label,
// the shape the category and item charts consume.
type ValueQuantitySeries struct {
	Labels       []string  `json:"labels"`
	PriceData    []float64 `json:"price_data"`
	QuantityData []float64 `json:"quantity_data"`
}

// ProductSalesSeries is the top-products chart: revenue and units per product.
type ProductSalesSeries struct {
	Labels       []string  `json:"labels"`
	RevenueData  []float64 `json:"revenue_data"`
	QuantityData []float64 `json:"quantity_data"`
}

// HourlySeries is today's sales in 24 fixed buckets, zero-filled.
type HourlySeries struct {
	Labels       []string  `json:"labels"`
	Data         []float64 `json:"data"`
	QuantityData []float64 `json:"quantity_data"`
}

// ProductSalesRow is one aggregated row of per-product sales.
type ProductSalesRow struct {
	ItemName      string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// ForecastRow feeds the naive 7-day projection.
type ForecastRow struct {
	ItemName      string
	TotalQuantity int64
	DaysWithSales int64
}

// MonthlySalesPoint is revenue grouped by YYYY-MM month.
type MonthlySalesPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// CategoryValuePoint is inventory value grouped by category.
type CategoryValuePoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// TopProductPoint is units sold per product.
type TopProductPoint struct {
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// OrderPoint is the minimal order projection used for in-process bucketing
// (hourly histogram, report tables).
type OrderPoint struct {
	ID        int64
	Total     decimal.Decimal
	CreatedAt time.Time
}

// DashboardSummary is everything the dashboard page shows for one tenant.
type DashboardSummary struct {
	InventoryCount   int             `json:"inventory_count"`
	CategoriesCount  int             `json:"categories_count"`
	OrdersCount      int             `json:"orders_count"`
	StockValue       decimal.Decimal `json:"stock_value"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	LowStockProducts []InventoryItem `json:"low_stock_products"`
	RecentOrders     []Order         `json:"recent_orders"`
	RecentActivities []HistoryEntry  `json:"recent_activities"`
	CompanyName      string          `json:"company_name"`
}
