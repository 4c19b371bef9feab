package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"invdash_backend/internal/models"
)

// HistoryRepository defines the interface for the append-only audit log.
type HistoryRepository interface {
	CreateEntry(executor SQLExecutor, entry *models.HistoryEntry) (int64, error)
	GetHistory(userID int64) ([]models.HistoryEntry, error)
	GetRecentHistory(userID int64, limit int) ([]models.HistoryEntry, error)
}

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new instance of HistoryRepository.
func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// CreateEntry appends one audit row. Rows are never updated or deleted.
func (r *historyRepository) CreateEntry(executor SQLExecutor, entry *models.HistoryEntry) (int64, error) {
	query := `INSERT INTO history (user_id, action, item, details, category, quantity, order_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		entry.UserID, entry.Action, entry.Item, entry.Details, entry.Category,
		entry.Quantity, entry.OrderID, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating history entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

// GetHistory lists all audit rows for a tenant, newest first.
func (r *historyRepository) GetHistory(userID int64) ([]models.HistoryEntry, error) {
	return r.queryHistory(
		`SELECT id, user_id, action, item, details, category, quantity, order_id, created_at
		 FROM history WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
}

// GetRecentHistory lists the latest audit rows for the dashboard.
func (r *historyRepository) GetRecentHistory(userID int64, limit int) ([]models.HistoryEntry, error) {
	return r.queryHistory(
		`SELECT id, user_id, action, item, details, category, quantity, order_id, created_at
		 FROM history WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
}

func (r *historyRepository) queryHistory(query string, args ...interface{}) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying history: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.Item, &e.Details, &e.Category,
			&e.Quantity, &e.OrderID, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning history entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating history rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
