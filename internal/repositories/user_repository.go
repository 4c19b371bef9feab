package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invdash_backend/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByEmail(email string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
	UpdateCompanyName(executor SQLExecutor, userID int64, companyName string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user. CompanyName may be nil.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (email, username, password, company_name, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	var userID int64
	err := executor.QueryRow(query,
		user.Email, user.Username, hashedPassword, user.CompanyName, user.CreatedAt,
	).Scan(&userID)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: email %s", ErrDuplicateKey, user.Email)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.ID = userID
	return userID, nil
}

// FindUserByEmail retrieves a user and their hashed password by email.
func (r *userRepository) FindUserByEmail(email string) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string
	query := `SELECT id, email, username, password, company_name, created_at
	          FROM users
	          WHERE email = $1`

	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Username, &hashedPassword, &user.CompanyName, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by email: %v", ErrDatabaseError, err)
	}
	return user, hashedPassword, nil
}

// FindUserByID retrieves a user by their ID.
func (r *userRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, username, company_name, created_at
	          FROM users
	          WHERE id = $1`

	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Username, &user.CompanyName, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

// UpdateCompanyName sets the company name for a user.
func (r *userRepository) UpdateCompanyName(executor SQLExecutor, userID int64, companyName string) error {
	result, err := executor.Exec(`UPDATE users SET company_name = $1 WHERE id = $2`, companyName, userID)
	if err != nil {
		return fmt.Errorf("%w: updating company name for user %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for company name update: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
