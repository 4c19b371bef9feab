package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invdash_backend/internal/models"
)

// SettingRepository defines the interface for per-tenant settings.
type SettingRepository interface {
	CreateSetting(executor SQLExecutor, userID int64, key, value string) (int64, error)
	GetSettingValue(userID int64, key string) (string, error)
	GetSettings(userID int64) ([]models.Setting, error)
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

// CreateSetting inserts a key/value pair for a tenant. (user_id, key) is unique.
func (r *settingRepository) CreateSetting(executor SQLExecutor, userID int64, key, value string) (int64, error) {
	query := `INSERT INTO settings (user_id, setting_key, setting_value, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	now := time.Now()
	var id int64
	err := executor.QueryRow(query, userID, key, value, now, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: setting %q for user %d", ErrDuplicateKey, key, userID)
		}
		return 0, fmt.Errorf("%w: creating setting %q: %v", ErrDatabaseError, key, err)
	}
	return id, nil
}

// GetSettingValue reads one setting value for a tenant.
func (r *settingRepository) GetSettingValue(userID int64, key string) (string, error) {
	var value sql.NullString
	query := `SELECT setting_value FROM settings WHERE user_id = $1 AND setting_key = $2`
	err := r.db.QueryRow(query, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: reading setting %q: %v", ErrDatabaseError, key, err)
	}
	return value.String, nil
}

// GetSettings lists all settings for a tenant.
func (r *settingRepository) GetSettings(userID int64) ([]models.Setting, error) {
	settings := []models.Setting{}
	query := `SELECT id, user_id, setting_key, setting_value, created_at, updated_at
	          FROM settings WHERE user_id = $1 ORDER BY setting_key ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.ID, &s.UserID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating setting rows: %v", ErrDatabaseError, err)
	}
	return settings, nil
}
