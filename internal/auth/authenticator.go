package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Authenticator verifies a credential pair and returns the matching
// employee. Implementations must not reveal whether the username or the
// password was wrong.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Employee, error)
}

type employeeAuthenticator struct {
	repo Repository
}

// NewEmployeeAuthenticator builds the employees-table-backed authenticator.
func NewEmployeeAuthenticator(repo Repository) (Authenticator, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	return &employeeAuthenticator{repo: repo}, nil
}

func (a *employeeAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.Employee, error) {
	input := strings.TrimSpace(username)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	employee, err := a.repo.FindByUsername(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
	}

	valid, err := security.VerifyPassword(password, employee.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !employee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return employee, nil
}
