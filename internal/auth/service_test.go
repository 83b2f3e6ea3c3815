package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/config"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
	"github.com/kareemadel/printshop-backend/pkg/security"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS employees (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

type fakeSessionGenerator struct {
	lastAccessID string
}

func (f *fakeSessionGenerator) Generate(_ context.Context, accessID string) (string, error) {
	f.lastAccessID = accessID
	return "refresh-" + accessID, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "printshop-test",
		ExpirationMinutes: 15,
	}
}

func seedEmployee(t *testing.T, repo Repository, username, password string, active bool) *models.Employee {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	employee, err := repo.Create(context.Background(), &models.Employee{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		FullName:     "Test Employee",
		IsActive:     active,
	})
	require.NoError(t, err)
	return employee
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := NewRepository(setupAuthTestDB(t))
	seedEmployee(t, repo, "admin", "admin123", true)

	authenticator, err := NewEmployeeAuthenticator(repo)
	require.NoError(t, err)
	sessions := &fakeSessionGenerator{}
	svc, err := NewService(ServiceParams{
		Authenticator:  authenticator,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "Admin ", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "refresh-"+sessions.lastAccessID, resp.RefreshToken)
	assert.Equal(t, "admin", resp.Employee.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := NewRepository(setupAuthTestDB(t))
	seedEmployee(t, repo, "admin", "admin123", true)
	seedEmployee(t, repo, "ghost", "secret99", false)

	authenticator, err := NewEmployeeAuthenticator(repo)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		Authenticator:  authenticator,
		SessionManager: &fakeSessionGenerator{},
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	ctx := context.Background()

	cases := []LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "nobody", Password: "admin123"},
		{Username: "", Password: "admin123"},
		{Username: "ghost", Password: "secret99"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		require.Error(t, err, "username=%q", req.Username)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
		assert.Equal(t, "invalid credentials", appErr.Message())
	}
}

func TestEnsureAdminBootstrapsOnce(t *testing.T) {
	repo := NewRepository(setupAuthTestDB(t))
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel})
	cfg := config.Config{
		Admin: config.AdminConfig{
			Username: "Admin",
			Password: "admin123",
			FullName: "System Administrator",
		},
	}
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, repo, cfg, logg))

	created, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "System Administrator", created.FullName)

	// Second run leaves the existing account untouched.
	cfg.Admin.Password = "different"
	require.NoError(t, EnsureAdmin(ctx, repo, cfg, logg))

	unchanged, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, unchanged.PasswordHash)
}

func TestEnsureAdminRequiresPassword(t *testing.T) {
	repo := NewRepository(setupAuthTestDB(t))
	cfg := config.Config{Admin: config.AdminConfig{Username: "admin"}}

	err := EnsureAdmin(context.Background(), repo, cfg, nil)
	require.Error(t, err)
}
