package auth

import (
	"context"
	"fmt"
	"time"

	pkgAuth "github.com/kareemadel/printshop-backend/pkg/auth"
	"github.com/kareemadel/printshop-backend/pkg/auth/session"
	"github.com/kareemadel/printshop-backend/pkg/config"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type sessionGenerator interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

type service struct {
	authenticator Authenticator
	session       sessionGenerator
	jwtCfg        config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Authenticator  Authenticator
	SessionManager sessionGenerator
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		authenticator: params.Authenticator,
		session:       params.SessionManager,
		jwtCfg:        params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	employee, err := s.authenticator.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		JTI:        accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     newEmployeeDTO(employee),
	}, nil
}
