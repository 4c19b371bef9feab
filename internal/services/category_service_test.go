package services_test

import (
	"testing"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"
	"invdash_backend/internal/services"
	"invdash_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategoryIsIdempotentOnName(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := services.NewCategoryService(repositories.NewCategoryRepository(db), db)

	first, created, err := svc.AddCategory(userID, services.AddCategoryRequest{Name: "Beverages"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.AddCategory(userID, services.AddCategoryRequest{Name: "Beverages"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	categories, err := svc.GetCategories(userID)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestAddCategoryRequiresName(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	svc := services.NewCategoryService(repositories.NewCategoryRepository(db), db)
	_, _, err := svc.AddCategory(userID, services.AddCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUpdateCompanyNameWritesHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, "shop@example.com", "shop")

	historyRepo := repositories.NewHistoryRepository(db)
	svc := services.NewSettingsService(
		repositories.NewSettingRepository(db),
		repositories.NewUserRepository(db),
		historyRepo,
		db,
	)

	require.NoError(t, svc.UpdateCompanyName(userID, services.UpdateCompanyNameRequest{CompanyName: "Acme Traders"}))

	var companyName string
	require.NoError(t, db.QueryRow(`SELECT company_name FROM users WHERE id = $1`, userID).Scan(&companyName))
	assert.Equal(t, "Acme Traders", companyName)

	entries, err := historyRepo.GetHistory(userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCompanyNameUpdated, entries[0].Action)

	err = svc.UpdateCompanyName(userID, services.UpdateCompanyNameRequest{CompanyName: "  "})
	assert.ErrorIs(t, err, services.ErrValidation)
}
