package handlers

import (
	"errors"
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes category listing and creation.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories handles GET /api/v1/categories.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	categories, err := h.categoryService.GetCategories(userID)
	if err != nil {
		utils.LogError(err, "category listing failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// AddCategory handles POST /api/v1/categories. Posting an existing name is
// not an error: the existing category is returned.
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req services.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Category name is required")
		return
	}

	category, created, err := h.categoryService.AddCategory(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondFailure(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.LogError(err, "category creation failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to add category")
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Category already exists",
			"category": category,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Category added successfully",
		"category": category,
	})
}
