package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"invdash_backend/internal/models"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository carries the read-only aggregation queries feeding the
// dashboard, charts, forecast and the sales report. All queries are tenant
// scoped; order_items is scoped through its parent order.
type AnalyticsRepository interface {
	CountInventory(userID int64) (int, error)
	CountCategories(userID int64) (int, error)
	CountOrders(userID int64) (int, error)
	StockValue(userID int64) (decimal.Decimal, error)
	TotalSales(userID int64) (decimal.Decimal, error)
	ProductSales(userID int64, limit int) ([]models.ProductSalesRow, error)
	TopProducts(userID int64, limit int) ([]models.TopProductPoint, error)
	ForecastRows(userID int64, since time.Time) ([]models.ForecastRow, error)
	OrdersBetween(userID int64, from, to time.Time) ([]models.OrderPoint, error)
	MonthlySales(userID int64) ([]models.MonthlySalesPoint, error)
	CategoryValues(userID int64) ([]models.CategoryValuePoint, error)
}

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository.
func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) count(query string, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRow(query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting rows: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *analyticsRepository) CountInventory(userID int64) (int, error) {
	return r.count(`SELECT COUNT(*) FROM inventory WHERE user_id = $1`, userID)
}

func (r *analyticsRepository) CountCategories(userID int64) (int, error) {
	return r.count(`SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID)
}

func (r *analyticsRepository) CountOrders(userID int64) (int, error) {
	return r.count(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID)
}

// StockValue is the total value of on-hand inventory (quantity x price).
func (r *analyticsRepository) StockValue(userID int64) (decimal.Decimal, error) {
	var value decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity * price), 0) FROM inventory WHERE user_id = $1`
	if err := r.db.QueryRow(query, userID).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("%w: computing stock value: %v", ErrDatabaseError, err)
	}
	return value, nil
}

// TotalSales is the sum of all order totals for a tenant.
func (r *analyticsRepository) TotalSales(userID int64) (decimal.Decimal, error) {
	var value decimal.Decimal
	query := `SELECT COALESCE(SUM(total), 0) FROM orders WHERE user_id = $1`
	if err := r.db.QueryRow(query, userID).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("%w: computing total sales: %v", ErrDatabaseError, err)
	}
	return value, nil
}

// ProductSales aggregates all-time units and revenue per product, best
// revenue first. The denormalized item_name keeps deleted items in the
// numbers.
func (r *analyticsRepository) ProductSales(userID int64, limit int) ([]models.ProductSalesRow, error) {
	results := []models.ProductSalesRow{}
	query := `SELECT oi.item_name,
	                 SUM(oi.quantity) as total_quantity,
	                 SUM(oi.price * oi.quantity) as total_revenue
	          FROM order_items oi
	          JOIN orders o ON oi.order_id = o.id
	          WHERE o.user_id = $1
	          GROUP BY oi.item_name
	          ORDER BY total_revenue DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying product sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.ProductSalesRow
		if err := rows.Scan(&row.ItemName, &row.TotalQuantity, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("%w: scanning product sales row: %v", ErrDatabaseError, err)
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product sales rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// TopProducts lists products by units sold, descending.
func (r *analyticsRepository) TopProducts(userID int64, limit int) ([]models.TopProductPoint, error) {
	results := []models.TopProductPoint{}
	query := `SELECT oi.item_name, SUM(oi.quantity) as total_sold
	          FROM order_items oi
	          JOIN orders o ON oi.order_id = o.id
	          WHERE o.user_id = $1
	          GROUP BY oi.item_name
	          ORDER BY total_sold DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.TopProductPoint
		if err := rows.Scan(&p.Name, &p.TotalSold); err != nil {
			return nil, fmt.Errorf("%w: scanning top product row: %v", ErrDatabaseError, err)
		}
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top product rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// ForecastRows returns per-product units and distinct sale days since the
// cutoff, the inputs of the naive 7-day projection.
func (r *analyticsRepository) ForecastRows(userID int64, since time.Time) ([]models.ForecastRow, error) {
	results := []models.ForecastRow{}
	query := `SELECT oi.item_name,
	                 SUM(oi.quantity) as total_quantity,
	                 COUNT(DISTINCT DATE(oi.created_at)) as days_with_sales
	          FROM order_items oi
	          JOIN orders o ON oi.order_id = o.id
	          WHERE o.user_id = $1 AND oi.created_at >= $2
	          GROUP BY oi.item_name`

	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: querying forecast rows: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.ForecastRow
		if err := rows.Scan(&row.ItemName, &row.TotalQuantity, &row.DaysWithSales); err != nil {
			return nil, fmt.Errorf("%w: scanning forecast row: %v", ErrDatabaseError, err)
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating forecast rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// OrdersBetween returns the (id, total, created_at) projection of a tenant's
// orders in [from, to). Bucketing happens in the service.
func (r *analyticsRepository) OrdersBetween(userID int64, from, to time.Time) ([]models.OrderPoint, error) {
	results := []models.OrderPoint{}
	query := `SELECT id, total, created_at
	          FROM orders
	          WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	          ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders between: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.OrderPoint
		if err := rows.Scan(&p.ID, &p.Total, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning order point: %v", ErrDatabaseError, err)
		}
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order points: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// MonthlySales groups revenue by calendar month. The textual timestamp prefix
// (YYYY-MM) is portable across postgres and sqlite, unlike to_char/strftime.
func (r *analyticsRepository) MonthlySales(userID int64) ([]models.MonthlySalesPoint, error) {
	results := []models.MonthlySalesPoint{}
	query := `SELECT SUBSTR(CAST(created_at AS TEXT), 1, 7) as month, SUM(total) as revenue
	          FROM orders
	          WHERE user_id = $1
	          GROUP BY month
	          ORDER BY month ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying monthly sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.MonthlySalesPoint
		var revenue decimal.Decimal
		if err := rows.Scan(&p.Month, &revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly sales row: %v", ErrDatabaseError, err)
		}
		p.Revenue = revenue.InexactFloat64()
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating monthly sales rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}

// CategoryValues groups inventory value by category, highest first.
func (r *analyticsRepository) CategoryValues(userID int64) ([]models.CategoryValuePoint, error) {
	results := []models.CategoryValuePoint{}
	query := `SELECT COALESCE(c.name, 'Uncategorized') as category,
	                 SUM(i.quantity * i.price) as value
	          FROM inventory i
	          LEFT JOIN categories c ON i.category_id = c.id
	          WHERE i.user_id = $1
	          GROUP BY c.name
	          ORDER BY value DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying category values: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.CategoryValuePoint
		var value decimal.Decimal
		if err := rows.Scan(&p.Category, &value); err != nil {
			return nil, fmt.Errorf("%w: scanning category value row: %v", ErrDatabaseError, err)
		}
		p.Value = value.InexactFloat64()
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category value rows: %v", ErrDatabaseError, err)
	}
	return results, nil
}
