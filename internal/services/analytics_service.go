package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
)

const (
	lowStockLimit       = 5
	recentOrdersLimit   = 5
	recentActivityLimit = 10
	topProductsLimit    = 10
	forecastWindowDays  = 30
	forecastTopN        = 10
)

// SalesCharts bundles the two series of the sales analytics endpoint.
type SalesCharts struct {
	Products models.ProductSalesSeries
	Today    models.HourlySeries
}

// AnalyticsOverview is the combined payload of the analytics page.
type AnalyticsOverview struct {
	MonthlySales   []models.MonthlySalesPoint
	TopProducts    []models.TopProductPoint
	CategoryValues []models.CategoryValuePoint
	Inventory      []models.InventoryItem
	Currency       string
}

// AnalyticsService computes the dashboard summary, the chart series and the
// naive sales forecast. Chart bucketing and sorting happen here, not in SQL.
type AnalyticsService interface {
	GetDashboard(userID int64) (*models.DashboardSummary, error)
	GetCategoryData(userID int64) (*models.ValueQuantitySeries, error)
	GetInventoryData(userID int64) (category, item *models.ValueQuantitySeries, err error)
	GetSalesData(userID int64) (*SalesCharts, error)
	GetForecast(userID int64) (*models.Series, error)
	GetOverview(userID int64) (*AnalyticsOverview, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	invRepo       repositories.InventoryRepository
	orderRepo     repositories.OrderRepository
	historyRepo   repositories.HistoryRepository
	userRepo      repositories.UserRepository
	settingRepo   repositories.SettingRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(
	ar repositories.AnalyticsRepository,
	ir repositories.InventoryRepository,
	or repositories.OrderRepository,
	hr repositories.HistoryRepository,
	ur repositories.UserRepository,
	sr repositories.SettingRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: ar,
		invRepo:       ir,
		orderRepo:     or,
		historyRepo:   hr,
		userRepo:      ur,
		settingRepo:   sr,
	}
}

// GetDashboard assembles the counters, totals and recent-activity panels.
func (s *analyticsService) GetDashboard(userID int64) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}

	var err error
	if summary.InventoryCount, err = s.analyticsRepo.CountInventory(userID); err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}
	if summary.CategoriesCount, err = s.analyticsRepo.CountCategories(userID); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if summary.OrdersCount, err = s.analyticsRepo.CountOrders(userID); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if summary.StockValue, err = s.analyticsRepo.StockValue(userID); err != nil {
		return nil, fmt.Errorf("failed to compute stock value: %w", err)
	}
	if summary.TotalSales, err = s.analyticsRepo.TotalSales(userID); err != nil {
		return nil, fmt.Errorf("failed to compute total sales: %w", err)
	}
	if summary.LowStockProducts, err = s.invRepo.GetLowStockItems(userID, lowStockLimit); err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}
	if summary.RecentOrders, err = s.orderRepo.GetRecentOrders(userID, recentOrdersLimit); err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	if summary.RecentActivities, err = s.historyRepo.GetRecentHistory(userID, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}

	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	summary.CompanyName = user.Username
	if user.CompanyName != nil && *user.CompanyName != "" {
		summary.CompanyName = *user.CompanyName
	}
	return summary, nil
}

// GetCategoryData groups on-hand inventory value and quantity by category.
func (s *analyticsService) GetCategoryData(userID int64) (*models.ValueQuantitySeries, error) {
	items, err := s.invRepo.GetItems(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	return groupByCategory(items), nil
}

// GetInventoryData returns both the per-category and per-item breakdown of
// inventory value and quantity.
func (s *analyticsService) GetInventoryData(userID int64) (*models.ValueQuantitySeries, *models.ValueQuantitySeries, error) {
	items, err := s.invRepo.GetItems(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	return groupByCategory(items), groupByItem(items), nil
}

// GetSalesData returns the all-time top products and today's hourly histogram.
// The histogram always has 24 zero-filled buckets; quantity_data counts the
// orders placed in each hour.
func (s *analyticsService) GetSalesData(userID int64) (*SalesCharts, error) {
	rows, err := s.analyticsRepo.ProductSales(userID, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get product sales: %w", err)
	}

	products := models.ProductSalesSeries{
		Labels:       []string{},
		RevenueData:  []float64{},
		QuantityData: []float64{},
	}
	for _, row := range rows {
		products.Labels = append(products.Labels, row.ItemName)
		products.RevenueData = append(products.RevenueData, row.TotalRevenue.InexactFloat64())
		products.QuantityData = append(products.QuantityData, float64(row.TotalQuantity))
	}
	if len(products.Labels) == 0 {
		products.Labels = []string{models.PlaceholderNoData}
		products.RevenueData = []float64{0}
		products.QuantityData = []float64{0}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	points, err := s.analyticsRepo.OrdersBetween(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's orders: %w", err)
	}

	today := models.HourlySeries{
		Labels:       make([]string, 24),
		Data:         make([]float64, 24),
		QuantityData: make([]float64, 24),
	}
	for h := 0; h < 24; h++ {
		today.Labels[h] = fmt.Sprintf("%02d:00", h)
	}
	for _, p := range points {
		h := p.CreatedAt.Hour()
		today.Data[h] += p.Total.InexactFloat64()
		today.QuantityData[h]++
	}

	return &SalesCharts{Products: products, Today: today}, nil
}

// GetForecast projects next week's demand per product: average daily units
// over the last 30 days times seven, clamped at zero, top sellers first.
func (s *analyticsService) GetForecast(userID int64) (*models.Series, error) {
	since := time.Now().AddDate(0, 0, -forecastWindowDays)
	rows, err := s.analyticsRepo.ForecastRows(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast rows: %w", err)
	}

	type projection struct {
		name  string
		value float64
	}
	projections := make([]projection, 0, len(rows))
	for _, row := range rows {
		days := row.DaysWithSales
		if days < 1 {
			days = 1
		}
		projected := float64(row.TotalQuantity) / float64(days) * 7
		if projected < 0 {
			projected = 0
		}
		projections = append(projections, projection{name: row.ItemName, value: projected})
	}
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].value > projections[j].value
	})
	if len(projections) > forecastTopN {
		projections = projections[:forecastTopN]
	}

	series := &models.Series{Labels: []string{}, Data: []float64{}}
	for _, p := range projections {
		series.Labels = append(series.Labels, p.name)
		series.Data = append(series.Data, p.value)
	}
	if len(series.Labels) == 0 {
		series.Labels = []string{models.PlaceholderNoData}
		series.Data = []float64{0}
	}
	return series, nil
}

// GetOverview assembles the analytics page payload.
func (s *analyticsService) GetOverview(userID int64) (*AnalyticsOverview, error) {
	monthly, err := s.analyticsRepo.MonthlySales(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly sales: %w", err)
	}
	topProducts, err := s.analyticsRepo.TopProducts(userID, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	categoryValues, err := s.analyticsRepo.CategoryValues(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category values: %w", err)
	}
	inventory, err := s.invRepo.GetItems(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	currency, err := s.settingRepo.GetSettingValue(userID, models.SettingCurrency)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to read currency setting: %w", err)
		}
		currency = models.DefaultCurrency
	}

	return &AnalyticsOverview{
		MonthlySales:   monthly,
		TopProducts:    topProducts,
		CategoryValues: categoryValues,
		Inventory:      inventory,
		Currency:       currency,
	}, nil
}

// groupByCategory folds items into per-category value and quantity series,
// highest value first. Items without a category land in "Uncategorized".
func groupByCategory(items []models.InventoryItem) *models.ValueQuantitySeries {
	type bucket struct {
		value    float64
		quantity float64
	}
	buckets := map[string]*bucket{}
	for _, item := range items {
		name := "Uncategorized"
		if item.CategoryName != nil && *item.CategoryName != "" {
			name = *item.CategoryName
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
		}
		b.value += item.Price.InexactFloat64() * float64(item.Quantity)
		b.quantity += float64(item.Quantity)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if buckets[names[i]].value != buckets[names[j]].value {
			return buckets[names[i]].value > buckets[names[j]].value
		}
		return names[i] < names[j]
	})

	series := &models.ValueQuantitySeries{Labels: []string{}, PriceData: []float64{}, QuantityData: []float64{}}
	for _, name := range names {
		series.Labels = append(series.Labels, name)
		series.PriceData = append(series.PriceData, buckets[name].value)
		series.QuantityData = append(series.QuantityData, buckets[name].quantity)
	}
	if len(series.Labels) == 0 {
		series.Labels = []string{models.PlaceholderNoData}
		series.PriceData = []float64{0}
		series.QuantityData = []float64{0}
	}
	return series
}

// groupByItem builds the per-item series, highest value first.
func groupByItem(items []models.InventoryItem) *models.ValueQuantitySeries {
	sorted := make([]models.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi := sorted[i].Price.InexactFloat64() * float64(sorted[i].Quantity)
		vj := sorted[j].Price.InexactFloat64() * float64(sorted[j].Quantity)
		return vi > vj
	})

	series := &models.ValueQuantitySeries{Labels: []string{}, PriceData: []float64{}, QuantityData: []float64{}}
	for _, item := range sorted {
		series.Labels = append(series.Labels, item.Name)
		series.PriceData = append(series.PriceData, item.Price.InexactFloat64()*float64(item.Quantity))
		series.QuantityData = append(series.QuantityData, float64(item.Quantity))
	}
	if len(series.Labels) == 0 {
		series.Labels = []string{models.PlaceholderNoItems}
		series.PriceData = []float64{0}
		series.QuantityData = []float64{0}
	}
	return series
}
