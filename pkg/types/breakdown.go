package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookCost is the per-book slice of a quote. Units bill whole: a partial
// unit is rounded up before pricing.
type BookCost struct {
	BookID      uuid.UUID       `json:"book_id"`
	Name        string          `json:"name"`
	SubjectName string          `json:"subject_name"`
	YearName    string          `json:"year_name"`
	Pages       int             `json:"pages"`
	Units       int             `json:"units"`
	Cost        decimal.Decimal `json:"cost"`
}

// TierInfo mirrors the public fields of the chosen print tier.
type TierInfo struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	PagesPerUnit int             `json:"pages_per_unit"`
	Description  *string         `json:"description,omitempty"`
}

// AddOnCharge is one resolved flat add-on applied to the order.
type AddOnCharge struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
}

// Breakdown is the full cost computation for one order.
type Breakdown struct {
	Books         []BookCost      `json:"books"`
	Tier          TierInfo        `json:"tier"`
	AddOns        []AddOnCharge   `json:"addons"`
	PrintingTotal decimal.Decimal `json:"printing_total"`
	AddOnsTotal   decimal.Decimal `json:"addons_total"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}
