package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderItemNotFound = errors.New("order references an unknown inventory item")
	ErrEmptyOrder        = errors.New("order must contain at least one line item")
)

// DefaultCustomer is used when no customer name is submitted.
const DefaultCustomer = "Walk-in Customer"

// StatusPending is the status every new order is created with.
const StatusPending = "pending"

// OrderLine is one (item, quantity, price) triple of an order submission.
// The price is the client-submitted unit price; stored prices are not
// consulted.
type OrderLine struct {
	ItemID   int64
	Quantity int
	Price    decimal.Decimal
}

// PlaceOrderRequest is the normalized order submission.
type PlaceOrderRequest struct {
	Customer string
	Lines    []OrderLine
}

// PlaceOrderResult is returned to the caller on success.
type PlaceOrderResult struct {
	OrderID     int64
	OrderNumber string
	Total       decimal.Decimal
}

// OrderService handles order placement and listing.
type OrderService interface {
	PlaceOrder(userID int64, req PlaceOrderRequest) (*PlaceOrderResult, error)
	GetOrders(userID int64) ([]models.Order, string, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	invRepo     repositories.InventoryRepository
	settingRepo repositories.SettingRepository
	db          *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	ir repositories.InventoryRepository,
	sr repositories.SettingRepository,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:   or,
		invRepo:     ir,
		settingRepo: sr,
		db:          db,
	}
}

// PlaceOrder runs the whole placement flow inside one transaction: order
// number generation, order insert, per-line item-name resolution, order-item
// inserts and stock decrements. Any failure rolls the whole order back.
func (s *orderService) PlaceOrder(userID int64, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for item ID %d must be positive", ErrValidation, line.ItemID)
		}
	}

	customer := req.Customer
	if customer == "" {
		customer = DefaultCustomer
	}

	total := decimal.Zero
	for _, line := range req.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	orderNumber, err := s.orderRepo.NextOrderNumber(tx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order := models.Order{
		OrderNumber: orderNumber,
		Customer:    customer,
		Status:      StatusPending,
		Total:       total,
		UserID:      userID,
	}
	orderID, err := s.orderRepo.CreateOrder(tx, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	for _, line := range req.Lines {
		itemName, err := s.invRepo.GetItemNameByID(tx, userID, line.ItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: item ID %d", ErrOrderItemNotFound, line.ItemID)
			}
			return nil, fmt.Errorf("failed to resolve item %d: %w", line.ItemID, err)
		}

		itemID := line.ItemID
		orderItem := models.OrderItem{
			OrderID:  orderID,
			ItemID:   &itemID,
			ItemName: itemName,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
		if _, err := s.orderRepo.CreateOrderItem(tx, &orderItem); err != nil {
			return nil, fmt.Errorf("failed to create order item for item %d: %w", line.ItemID, err)
		}

		if err := s.invRepo.AdjustQuantity(tx, userID, line.ItemID, -line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for item %d: %w", line.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return &PlaceOrderResult{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Total:       total,
	}, nil
}

// GetOrders lists a tenant's orders newest-first with their items, plus the
// tenant's currency symbol.
func (s *orderService) GetOrders(userID int64) ([]models.Order, string, error) {
	orders, err := s.orderRepo.GetOrders(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get orders: %w", err)
	}

	for i := range orders {
		items, err := s.orderRepo.GetOrderItemsByOrderID(orders[i].ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get items for order %d: %w", orders[i].ID, err)
		}
		orders[i].Items = items
	}

	currency, err := s.settingRepo.GetSettingValue(userID, models.SettingCurrency)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, "", fmt.Errorf("failed to read currency setting: %w", err)
		}
		currency = models.DefaultCurrency
	}

	return orders, currency, nil
}
