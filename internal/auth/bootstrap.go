package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/config"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	"github.com/kareemadel/printshop-backend/pkg/logger"
	"github.com/kareemadel/printshop-backend/pkg/security"
)

// EnsureAdmin creates the bootstrap administrator account when no
// employee with the configured username exists. Existing accounts are
// left untouched, including their password.
func EnsureAdmin(ctx context.Context, repo Repository, cfg config.Config, logg *logger.Logger) error {
	username := strings.ToLower(strings.TrimSpace(cfg.Admin.Username))
	if username == "" {
		return fmt.Errorf("admin username required")
	}

	_, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	if cfg.Admin.Password == "" {
		return fmt.Errorf("admin password required to bootstrap %q", username)
	}
	hash, err := security.HashPassword(cfg.Admin.Password, cfg.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	_, err = repo.Create(ctx, &models.Employee{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		FullName:     cfg.Admin.FullName,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "username", username), "bootstrap admin created")
	}
	return nil
}
