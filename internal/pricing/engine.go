package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/types"
)

// Compute prices a non-empty cart against one print tier and a set of
// already-resolved add-ons. Pure computation, idempotent for identical
// inputs.
//
// Per book: units = ceil(page_count / pages_per_unit), partial units
// bill as whole units; cost = units * price_per_unit.
func Compute(items []cart.Item, tier models.PrintTier, addons []models.AddOn) (*types.Breakdown, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if tier.PagesPerUnit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pages_per_unit must be positive")
	}

	books := make([]types.BookCost, 0, len(items))
	printingTotal := decimal.Zero
	for _, item := range items {
		units := unitsFor(item.PageCount, tier.PagesPerUnit)
		cost := tier.PricePerUnit.Mul(decimal.NewFromInt(int64(units)))
		books = append(books, types.BookCost{
			BookID:      item.BookID,
			Name:        item.Name,
			SubjectName: item.SubjectName,
			YearName:    item.YearName,
			Pages:       item.PageCount,
			Units:       units,
			Cost:        cost,
		})
		printingTotal = printingTotal.Add(cost)
	}

	charges := make([]types.AddOnCharge, 0, len(addons))
	addonsTotal := decimal.Zero
	for _, addon := range addons {
		charges = append(charges, types.AddOnCharge{
			ID:          addon.ID,
			Name:        addon.Name,
			Price:       addon.Price,
			Description: addon.Description,
		})
		addonsTotal = addonsTotal.Add(addon.Price)
	}

	return &types.Breakdown{
		Books: books,
		Tier: types.TierInfo{
			ID:           tier.ID,
			Name:         tier.Name,
			PricePerUnit: tier.PricePerUnit,
			PagesPerUnit: tier.PagesPerUnit,
			Description:  tier.Description,
		},
		AddOns:        charges,
		PrintingTotal: printingTotal,
		AddOnsTotal:   addonsTotal,
		TotalCost:     printingTotal.Add(addonsTotal),
	}, nil
}

func unitsFor(pages, pagesPerUnit int) int {
	units := pages / pagesPerUnit
	if pages%pagesPerUnit != 0 {
		units++
	}
	return units
}
