package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/internal/pricing"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

// IssueInput carries the customer-facing fields of a new invoice.
type IssueInput struct {
	TierID       uuid.UUID
	AddOnIDs     []uuid.UUID
	CustomerName string
	AmountPaid   decimal.Decimal
	Notes        *string
}

// Service issues invoices from priced carts and serves admin reads.
type Service interface {
	Issue(ctx context.Context, items []cart.Item, input IssueInput) (*DTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DTO, error)
	List(ctx context.Context) ([]DTO, error)
}

type service struct {
	repo    Repository
	pricing pricing.Service
	display *time.Location
	now     func() time.Time
}

// NewService constructs an invoice service. displayTimezone is the IANA
// zone used for rendered timestamps; storage stays UTC.
func NewService(repo Repository, pricingSvc pricing.Service, displayTimezone string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if pricingSvc == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	location, err := time.LoadLocation(displayTimezone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", displayTimezone, err)
	}
	return &service{
		repo:    repo,
		pricing: pricingSvc,
		display: location,
		now:     time.Now,
	}, nil
}

// Issue re-quotes the cart, snapshots the breakdown, and persists the
// invoice. balance_due may be negative: that is change due, not an
// error.
func (s *service) Issue(ctx context.Context, items []cart.Item, input IssueInput) (*DTO, error) {
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.AmountPaid.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount_paid cannot be negative")
	}

	breakdown, err := s.pricing.Quote(ctx, items, input.TierID, input.AddOnIDs)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:           uuid.New(),
		CustomerName: input.CustomerName,
		Notes:        input.Notes,
		Breakdown:    *breakdown,
		TotalCost:    breakdown.TotalCost,
		AmountPaid:   input.AmountPaid,
		BalanceDue:   breakdown.TotalCost.Sub(input.AmountPaid),
		IssuedAt:     s.now().UTC(),
	}
	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist invoice")
	}
	return newDTO(created, s.display), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DTO, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return newDTO(invoice, s.display), nil
}

func (s *service) List(ctx context.Context) ([]DTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	out := make([]DTO, len(rows))
	for i := range rows {
		out[i] = *newDTO(&rows[i], s.display)
	}
	return out, nil
}
