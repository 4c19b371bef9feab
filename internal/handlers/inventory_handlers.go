package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes inventory CRUD and the available-items lookup.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new instance of InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetInventory handles GET /api/v1/inventory.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, err := h.inventoryService.GetInventoryPage(userID)
	if err != nil {
		utils.LogError(err, "inventory listing failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"items":      page.Items,
		"categories": page.Categories,
		"currency":   page.Currency,
	})
}

// GetAvailableItems handles GET /api/v1/inventory/available.
func (h *InventoryHandler) GetAvailableItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.inventoryService.GetAvailableItems(userID)
	if err != nil {
		utils.LogError(err, "available items lookup failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load available items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
	})
}

// GetItem handles GET /api/v1/inventory/:id.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.inventoryService.GetItem(userID, itemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondFailure(c, http.StatusNotFound, "Item not found")
			return
		}
		utils.LogError(err, "item lookup failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

// AddItem handles POST /api/v1/inventory.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid item payload: "+err.Error())
		return
	}

	item, err := h.inventoryService.AddItem(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNameExists):
			utils.RespondError(c, http.StatusBadRequest, "An item with the name '"+req.Name+"' already exists")
		case errors.Is(err, services.ErrValidation):
			utils.RespondError(c, http.StatusBadRequest, err.Error())
		default:
			utils.LogError(err, "item creation failed")
			utils.RespondError(c, http.StatusInternalServerError, "Failed to add item")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Item added successfully",
		"item":    item,
	})
}

// EditItem handles PUT /api/v1/inventory/:id.
func (h *InventoryHandler) EditItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Invalid item payload: "+err.Error())
		return
	}

	item, err := h.inventoryService.EditItem(userID, itemID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			utils.RespondFailure(c, http.StatusNotFound, "Item not found")
		case errors.Is(err, services.ErrItemNameExists):
			utils.RespondFailure(c, http.StatusBadRequest, "Another item with the name '"+req.Name+"' already exists")
		case errors.Is(err, services.ErrValidation):
			utils.RespondFailure(c, http.StatusBadRequest, err.Error())
		default:
			utils.LogError(err, "item edit failed")
			utils.RespondFailure(c, http.StatusInternalServerError, "Failed to update item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item updated successfully",
		"item":    item,
	})
}

// DeleteItem handles DELETE /api/v1/inventory/:id.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.inventoryService.DeleteItem(userID, itemID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondFailure(c, http.StatusNotFound, "Item not found")
			return
		}
		utils.LogError(err, "item deletion failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
	})
}
