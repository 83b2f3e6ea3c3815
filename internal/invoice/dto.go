package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
	"github.com/kareemadel/printshop-backend/pkg/types"
)

const displayTimeFormat = "2006-01-02 15:04"

// DTO is the printable invoice payload. IssuedAt is UTC; IssuedAtLocal
// is the same instant rendered in the shop's display timezone.
type DTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Notes         *string         `json:"notes,omitempty"`
	Breakdown     types.Breakdown `json:"breakdown"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	IssuedAt      time.Time       `json:"issued_at"`
	IssuedAtLocal string          `json:"issued_at_local"`
}

func newDTO(invoice *models.Invoice, display *time.Location) *DTO {
	return &DTO{
		ID:            invoice.ID,
		CustomerName:  invoice.CustomerName,
		Notes:         invoice.Notes,
		Breakdown:     invoice.Breakdown,
		TotalCost:     invoice.TotalCost,
		AmountPaid:    invoice.AmountPaid,
		BalanceDue:    invoice.BalanceDue,
		IssuedAt:      invoice.IssuedAt,
		IssuedAtLocal: invoice.IssuedAt.In(display).Format(displayTimeFormat),
	}
}
