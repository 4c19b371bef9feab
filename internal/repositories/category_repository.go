package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invdash_backend/internal/models"
)

// CategoryRepository defines the interface for category-related database operations.
type CategoryRepository interface {
	GetCategories(userID int64) ([]models.Category, error)
	FindCategoryIDByName(executor SQLExecutor, userID int64, name string) (int64, error)
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetCategories lists a tenant's categories ordered by name.
func (r *categoryRepository) GetCategories(userID int64) ([]models.Category, error) {
	categories := []models.Category{}
	query := `SELECT id, name, parent_id, user_id, created_at
	          FROM categories
	          WHERE user_id = $1
	          ORDER BY name ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

// FindCategoryIDByName looks up a category by exact name within a tenant.
func (r *categoryRepository) FindCategoryIDByName(executor SQLExecutor, userID int64, name string) (int64, error) {
	var id int64
	query := `SELECT id FROM categories WHERE name = $1 AND user_id = $2`
	err := executor.QueryRow(query, name, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: finding category %q: %v", ErrDatabaseError, name, err)
	}
	return id, nil
}

// CreateCategory inserts a new category for a tenant.
func (r *categoryRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	query := `INSERT INTO categories (name, parent_id, user_id, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		category.Name, category.ParentID, category.UserID, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: category %q", ErrDuplicateKey, category.Name)
		}
		return 0, fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}
