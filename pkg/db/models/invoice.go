package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/pkg/types"
)

// Invoice captures a priced order at issuance time. The breakdown is a
// snapshot: later catalog edits never change an issued invoice.
type Invoice struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName string          `gorm:"column:customer_name;not null"`
	Notes        *string         `gorm:"column:notes"`
	Breakdown    types.Breakdown `gorm:"column:breakdown;type:jsonb;serializer:json"`
	TotalCost    decimal.Decimal `gorm:"column:total_cost;type:numeric(12,2);not null"`
	AmountPaid   decimal.Decimal `gorm:"column:amount_paid;type:numeric(12,2);not null"`
	BalanceDue   decimal.Decimal `gorm:"column:balance_due;type:numeric(12,2);not null"`
	IssuedAt     time.Time       `gorm:"column:issued_at;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
