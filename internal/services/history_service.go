package services

import (
	"fmt"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
)

// HistoryService exposes the tenant's audit log.
type HistoryService interface {
	GetHistory(userID int64) ([]models.HistoryEntry, error)
}

type historyService struct {
	historyRepo repositories.HistoryRepository
}

// NewHistoryService creates a new instance of HistoryService.
func NewHistoryService(historyRepo repositories.HistoryRepository) HistoryService {
	return &historyService{historyRepo: historyRepo}
}

// GetHistory lists all audit rows for a tenant, newest first.
func (s *historyService) GetHistory(userID int64) ([]models.HistoryEntry, error) {
	entries, err := s.historyRepo.GetHistory(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return entries, nil
}
