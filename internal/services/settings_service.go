package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
	"invdash_backend/pkg/utils"
)

// UpdateCompanyNameRequest DTO.
type UpdateCompanyNameRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

// SettingsService handles per-tenant settings and the company profile.
type SettingsService interface {
	GetSettings(userID int64) (map[string]string, error)
	GetCurrency(userID int64) (string, error)
	UpdateCompanyName(userID int64, req UpdateCompanyNameRequest) error
}

type settingsService struct {
	settingRepo repositories.SettingRepository
	userRepo    repositories.UserRepository
	historyRepo repositories.HistoryRepository
	db          *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(
	sr repositories.SettingRepository,
	ur repositories.UserRepository,
	hr repositories.HistoryRepository,
	db *sql.DB,
) SettingsService {
	return &settingsService{
		settingRepo: sr,
		userRepo:    ur,
		historyRepo: hr,
		db:          db,
	}
}

// GetSettings returns a tenant's settings as a key/value map. The currency
// default is filled in when the tenant has no explicit row.
func (s *settingsService) GetSettings(userID int64) (map[string]string, error) {
	rows, err := s.settingRepo.GetSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := map[string]string{}
	for _, row := range rows {
		value := ""
		if row.Value != nil {
			value = *row.Value
		}
		settings[row.Key] = value
	}
	if _, ok := settings[models.SettingCurrency]; !ok {
		settings[models.SettingCurrency] = models.DefaultCurrency
	}
	return settings, nil
}

// GetCurrency returns the tenant's currency symbol, falling back to the default.
func (s *settingsService) GetCurrency(userID int64) (string, error) {
	currency, err := s.settingRepo.GetSettingValue(userID, models.SettingCurrency)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.DefaultCurrency, nil
		}
		return "", fmt.Errorf("failed to read currency setting: %w", err)
	}
	return currency, nil
}

// UpdateCompanyName renames the tenant's company and records the change in
// the audit log, both in one transaction.
func (s *settingsService) UpdateCompanyName(userID int64, req UpdateCompanyNameRequest) error {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		return fmt.Errorf("%w: company name is required", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.UpdateCompanyName(tx, userID, name); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update company name: %w", err)
	}

	entry := models.HistoryEntry{
		UserID:  userID,
		Action:  models.ActionCompanyNameUpdated,
		Details: utils.NewNullString(fmt.Sprintf("Changed to %s", name)),
	}
	if _, err := s.historyRepo.CreateEntry(tx, &entry); err != nil {
		return fmt.Errorf("failed to record company name change: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit company name change: %w", err)
	}
	return nil
}
