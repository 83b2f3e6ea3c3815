package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

type fakeCatalog struct {
	tiers  map[uuid.UUID]models.PrintTier
	addons map[uuid.UUID]models.AddOn
}

func (f *fakeCatalog) FindPrintTier(_ context.Context, id uuid.UUID) (*models.PrintTier, error) {
	tier, ok := f.tiers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tier, nil
}

func (f *fakeCatalog) FindAddOnsByIDs(_ context.Context, ids []uuid.UUID, activeOnly bool) ([]models.AddOn, error) {
	var out []models.AddOn
	for _, id := range ids {
		addon, ok := f.addons[id]
		if !ok {
			continue
		}
		if activeOnly && !addon.IsActive {
			continue
		}
		out = append(out, addon)
	}
	return out, nil
}

func TestQuoteUnknownTier(t *testing.T) {
	svc, err := NewService(&fakeCatalog{tiers: map[uuid.UUID]models.PrintTier{}})
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), []cart.Item{bookItem("Algebra", 130)}, uuid.New(), nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestQuoteDropsUnknownAddOns(t *testing.T) {
	tier := tierFixture("0.5", 2)
	cover := models.AddOn{ID: uuid.New(), Name: "Cover", Price: decimal.RequireFromString("7.0"), IsActive: true}
	svc, err := NewService(&fakeCatalog{
		tiers:  map[uuid.UUID]models.PrintTier{tier.ID: tier},
		addons: map[uuid.UUID]models.AddOn{cover.ID: cover},
	})
	require.NoError(t, err)
	ctx := context.Background()
	items := []cart.Item{bookItem("Algebra", 130)}

	withUnknown, err := svc.Quote(ctx, items, tier.ID, []uuid.UUID{cover.ID, uuid.New()})
	require.NoError(t, err)
	withoutUnknown, err := svc.Quote(ctx, items, tier.ID, []uuid.UUID{cover.ID})
	require.NoError(t, err)

	assert.True(t, withUnknown.TotalCost.Equal(withoutUnknown.TotalCost))
	assert.Len(t, withUnknown.AddOns, 1)
	assert.True(t, withUnknown.AddOnsTotal.Equal(decimal.RequireFromString("7.0")))
}

func TestQuoteInactiveTierHidden(t *testing.T) {
	tier := tierFixture("0.5", 2)
	tier.IsActive = false
	svc, err := NewService(&fakeCatalog{tiers: map[uuid.UUID]models.PrintTier{tier.ID: tier}})
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), []cart.Item{bookItem("Algebra", 130)}, tier.ID, nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestQuoteEmptyCart(t *testing.T) {
	tier := tierFixture("0.5", 2)
	svc, err := NewService(&fakeCatalog{tiers: map[uuid.UUID]models.PrintTier{tier.ID: tier}})
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), nil, tier.ID, nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}
