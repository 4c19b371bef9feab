package repositories

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"invdash_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	NextOrderNumber(executor SQLExecutor, userID int64, day time.Time) (string, error)
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrders(userID int64) ([]models.Order, error)
	GetRecentOrders(userID int64, limit int) ([]models.Order, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// NextOrderNumber derives the next ORD-YYYYMMDD-NNNN number for the given day,
// scoped to the tenant. The sequence restarts at 0001 each day. Two concurrent
// callers can read the same maximum and produce a duplicate; the placement
// transaction narrows that window but does not close it.
func (r *orderRepository) NextOrderNumber(executor SQLExecutor, userID int64, day time.Time) (string, error) {
	prefix := "ORD-" + day.Format("20060102") + "-"

	var maxNumber sql.NullString
	query := `SELECT MAX(order_number) FROM orders WHERE user_id = $1 AND order_number LIKE $2`
	if err := executor.QueryRow(query, userID, prefix+"%").Scan(&maxNumber); err != nil {
		return "", fmt.Errorf("%w: reading max order number: %v", ErrDatabaseError, err)
	}

	seq := 1
	if maxNumber.Valid && maxNumber.String != "" {
		parts := strings.Split(maxNumber.String, "-")
		lastSeq, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return "", fmt.Errorf("%w: malformed order number %q: %v", ErrDatabaseError, maxNumber.String, err)
		}
		seq = lastSeq + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// CreateOrder inserts the order row and returns its id.
func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (order_number, customer, customer_email, customer_phone, status, total, notes,
	             user_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		order.OrderNumber, order.Customer, order.CustomerEmail, order.CustomerPhone,
		order.Status, order.Total, order.Notes, order.UserID,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

// CreateOrderItem inserts one order line carrying the denormalized item name.
func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items (order_id, item_id, item_name, quantity, price, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		item.OrderID, item.ItemID, item.ItemName, item.Quantity, item.Price, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

const orderColumns = `id, order_number, customer, customer_email, customer_phone, status, total,
	       notes, user_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *models.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.Customer, &o.CustomerEmail, &o.CustomerPhone,
		&o.Status, &o.Total, &o.Notes, &o.UserID, &o.CreatedAt, &o.UpdatedAt,
	)
}

// GetOrders lists a tenant's orders newest-first, without items.
func (r *orderRepository) GetOrders(userID int64) ([]models.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id DESC`, userID)
}

// GetRecentOrders lists the most recent orders for the dashboard.
func (r *orderRepository) GetRecentOrders(userID int64, limit int) ([]models.Order, error) {
	return r.queryOrders(
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
}

func (r *orderRepository) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	orders := []models.Order{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

// GetOrderItemsByOrderID lists the lines of one order. Inventory and category
// are LEFT JOINed: lines whose item was deleted keep their denormalized name
// and simply lose the category.
func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT oi.id, oi.order_id, oi.item_id, oi.item_name, oi.quantity, oi.price, oi.created_at,
	                 c.name as category_name
	          FROM order_items oi
	          LEFT JOIN inventory i ON oi.item_id = i.id
	          LEFT JOIN categories c ON i.category_id = c.id
	          WHERE oi.order_id = $1
	          ORDER BY oi.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var categoryName sql.NullString
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ItemID, &item.ItemName, &item.Quantity,
			&item.Price, &item.CreatedAt, &categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		if categoryName.Valid {
			name := categoryName.String
			item.CategoryName = &name
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}
