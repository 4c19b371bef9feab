package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderHandler exposes order placement and listing.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type createOrderPayload struct {
	Customer   string            `json:"customer"`
	OrderItems []int64           `json:"order_items"`
	Quantities []int             `json:"quantities"`
	Prices     []decimal.Decimal `json:"prices"`
}

// CreateOrder handles POST /api/v1/orders. Accepts a JSON body with parallel
// order_items/quantities/prices arrays, or the equivalent form encoding.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	req, err := h.parseOrderRequest(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.orderService.PlaceOrder(userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			utils.RespondError(c, http.StatusBadRequest, "Order must contain at least one item")
		case errors.Is(err, services.ErrOrderItemNotFound), errors.Is(err, services.ErrValidation):
			utils.RespondError(c, http.StatusBadRequest, err.Error())
		default:
			utils.LogError(err, "order placement failed")
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
		"total":        result.Total,
		"message":      "Order " + result.OrderNumber + " created successfully",
	})
}

// GetOrders handles GET /api/v1/orders.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, currency, err := h.orderService.GetOrders(userID)
	if err != nil {
		utils.LogError(err, "order listing failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"orders":   orders,
		"currency": currency,
	})
}

func (h *OrderHandler) parseOrderRequest(c *gin.Context) (*services.PlaceOrderRequest, error) {
	var payload createOrderPayload

	if strings.Contains(c.ContentType(), "json") {
		if err := c.ShouldBindJSON(&payload); err != nil {
			return nil, errors.New("Invalid order payload")
		}
	} else {
		var err error
		payload, err = parseOrderForm(c)
		if err != nil {
			return nil, err
		}
	}

	if len(payload.OrderItems) == 0 {
		return nil, errors.New("Order must contain at least one item")
	}
	if len(payload.OrderItems) != len(payload.Quantities) || len(payload.OrderItems) != len(payload.Prices) {
		return nil, errors.New("Order items, quantities and prices must have matching lengths")
	}

	req := services.PlaceOrderRequest{Customer: strings.TrimSpace(payload.Customer)}
	for i := range payload.OrderItems {
		req.Lines = append(req.Lines, services.OrderLine{
			ItemID:   payload.OrderItems[i],
			Quantity: payload.Quantities[i],
			Price:    payload.Prices[i],
		})
	}
	return &req, nil
}

func parseOrderForm(c *gin.Context) (createOrderPayload, error) {
	payload := createOrderPayload{Customer: c.PostForm("customer")}

	items := c.PostFormArray("order_items[]")
	quantities := c.PostFormArray("quantities[]")
	prices := c.PostFormArray("prices[]")
	if len(items) == 0 {
		items = c.PostFormArray("order_items")
		quantities = c.PostFormArray("quantities")
		prices = c.PostFormArray("prices")
	}

	for _, raw := range items {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return payload, errors.New("Invalid item ID: " + raw)
		}
		payload.OrderItems = append(payload.OrderItems, id)
	}
	for _, raw := range quantities {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return payload, errors.New("Invalid quantity: " + raw)
		}
		payload.Quantities = append(payload.Quantities, qty)
	}
	for _, raw := range prices {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return payload, errors.New("Invalid price: " + raw)
		}
		payload.Prices = append(payload.Prices, price)
	}
	return payload, nil
}
