package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
)

// AddCategoryRequest DTO.
type AddCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// CategoryService handles category listing and idempotent creation.
type CategoryService interface {
	GetCategories(userID int64) ([]models.Category, error)
	AddCategory(userID int64, req AddCategoryRequest) (*models.Category, bool, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	db           *sql.DB
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, db *sql.DB) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, db: db}
}

// GetCategories lists a tenant's categories.
func (s *categoryService) GetCategories(userID int64) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetCategories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// AddCategory creates a category, or returns the existing one when the name
// is already taken. The second return value reports whether a row was created.
func (s *categoryService) AddCategory(userID int64, req AddCategoryRequest) (*models.Category, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	existingID, err := s.categoryRepo.FindCategoryIDByName(s.db, userID, name)
	if err == nil {
		return &models.Category{ID: existingID, Name: name, UserID: userID}, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check existing category: %w", err)
	}

	category := models.Category{
		Name:     name,
		ParentID: req.ParentID,
		UserID:   userID,
	}
	if _, err := s.categoryRepo.CreateCategory(s.db, &category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost the race to a concurrent insert; resolve to the winner.
			if id, findErr := s.categoryRepo.FindCategoryIDByName(s.db, userID, name); findErr == nil {
				return &models.Category{ID: id, Name: name, UserID: userID}, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, true, nil
}
