package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

func tierFixture(price string, pagesPerUnit int) models.PrintTier {
	return models.PrintTier{
		ID:           uuid.New(),
		Name:         "test tier",
		PricePerUnit: decimal.RequireFromString(price),
		PagesPerUnit: pagesPerUnit,
		IsActive:     true,
	}
}

func bookItem(name string, pages int) cart.Item {
	return cart.Item{
		BookID:      uuid.New(),
		Name:        name,
		PageCount:   pages,
		SubjectName: "Maths",
		YearName:    "First Year",
	}
}

func TestUnitsBillWhole(t *testing.T) {
	cases := []struct {
		pages        int
		pagesPerUnit int
		units        int
	}{
		{130, 4, 33},
		{130, 2, 65},
		{128, 4, 32},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.units, unitsFor(tc.pages, tc.pagesPerUnit), "pages=%d per_unit=%d", tc.pages, tc.pagesPerUnit)
	}
}

func TestComputeSingleSided(t *testing.T) {
	breakdown, err := Compute([]cart.Item{bookItem("Algebra", 130)}, tierFixture("0.5", 2), nil)
	require.NoError(t, err)
	require.Len(t, breakdown.Books, 1)
	assert.Equal(t, 65, breakdown.Books[0].Units)
	assert.True(t, breakdown.Books[0].Cost.Equal(decimal.RequireFromString("32.5")))
	assert.True(t, breakdown.TotalCost.Equal(decimal.RequireFromString("32.5")))
}

func TestComputeDoubleSidedRoundsUp(t *testing.T) {
	breakdown, err := Compute([]cart.Item{bookItem("Algebra", 130)}, tierFixture("0.8", 4), nil)
	require.NoError(t, err)
	require.Len(t, breakdown.Books, 1)
	assert.Equal(t, 33, breakdown.Books[0].Units)
	assert.True(t, breakdown.Books[0].Cost.Equal(decimal.RequireFromString("26.4")))
}

func TestComputeTotalsWithAddOns(t *testing.T) {
	// Book costs 32.5 and 26.4 on a 0.1-per-page tier.
	items := []cart.Item{
		bookItem("Algebra", 325),
		bookItem("Optics", 264),
	}
	addons := []models.AddOn{
		{ID: uuid.New(), Name: "Cover", Price: decimal.RequireFromString("7.0")},
		{ID: uuid.New(), Name: "Binding", Price: decimal.RequireFromString("5.0")},
	}

	breakdown, err := Compute(items, tierFixture("0.1", 1), addons)
	require.NoError(t, err)
	assert.True(t, breakdown.PrintingTotal.Equal(decimal.RequireFromString("58.9")))
	assert.True(t, breakdown.AddOnsTotal.Equal(decimal.RequireFromString("12.0")))
	assert.True(t, breakdown.TotalCost.Equal(decimal.RequireFromString("70.9")))
}

func TestComputeOrderInvariant(t *testing.T) {
	a := bookItem("Algebra", 130)
	b := bookItem("Optics", 90)
	tier := tierFixture("0.8", 4)

	first, err := Compute([]cart.Item{a, b}, tier, nil)
	require.NoError(t, err)
	second, err := Compute([]cart.Item{b, a}, tier, nil)
	require.NoError(t, err)

	assert.True(t, first.TotalCost.Equal(second.TotalCost))
	assert.True(t, first.PrintingTotal.Equal(second.PrintingTotal))
}

func TestComputeEmptyCart(t *testing.T) {
	_, err := Compute(nil, tierFixture("0.5", 2), nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}
