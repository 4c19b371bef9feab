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

func TestRegisterCreatesUserWithDefaultCurrency(t *testing.T) {
	db := testutil.NewTestDB(t)
	settingRepo := repositories.NewSettingRepository(db)
	svc := services.NewAuthService(repositories.NewUserRepository(db), settingRepo, db)

	user, err := svc.Register(services.RegisterRequest{
		Username: "shop",
		Email:    "shop@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	currency, err := settingRepo.GetSettingValue(user.ID, models.SettingCurrency)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, currency)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db), repositories.NewSettingRepository(db), db)

	req := services.RegisterRequest{Username: "shop", Email: "shop@example.com", Password: "password123"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, services.ErrEmailExists)
}

func TestLoginChecksCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db), repositories.NewSettingRepository(db), db)

	_, err := svc.Register(services.RegisterRequest{
		Username: "shop",
		Email:    "shop@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(services.LoginRequest{Email: "shop@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "shop@example.com", resp.User.Email)

	_, err = svc.Login(services.LoginRequest{Email: "shop@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(services.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
