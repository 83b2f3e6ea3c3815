package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/types"
)

// TierReader is the catalog slice the quote service needs.
type TierReader interface {
	FindPrintTier(ctx context.Context, id uuid.UUID) (*models.PrintTier, error)
	FindAddOnsByIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]models.AddOn, error)
}

// Service resolves a tier and add-on selection and prices a cart.
type Service interface {
	Quote(ctx context.Context, items []cart.Item, tierID uuid.UUID, addonIDs []uuid.UUID) (*types.Breakdown, error)
}

type service struct {
	catalog TierReader
}

// NewService constructs a pricing service instance.
func NewService(catalog TierReader) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{catalog: catalog}, nil
}

// Quote loads the tier, resolves the requested add-on ids against the
// catalog, and computes the breakdown. Add-on ids that do not resolve
// are dropped, not an error.
func (s *service) Quote(ctx context.Context, items []cart.Item, tierID uuid.UUID, addonIDs []uuid.UUID) (*types.Breakdown, error) {
	if tierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "print tier id required")
	}

	tier, err := s.catalog.FindPrintTier(ctx, tierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print tier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load print tier")
	}
	if !tier.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print tier not found")
	}

	addons, err := s.catalog.FindAddOnsByIDs(ctx, addonIDs, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve add-ons")
	}

	return Compute(items, *tier, addons)
}
