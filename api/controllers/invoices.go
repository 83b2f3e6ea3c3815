package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/api/responses"
	"github.com/kareemadel/printshop-backend/api/validators"
	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/internal/invoice"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

type createInvoiceRequest struct {
	TierID       uuid.UUID       `json:"tier_id" validate:"required"`
	AddOnIDs     []uuid.UUID     `json:"addon_ids"`
	CustomerName string          `json:"customer_name" validate:"required,max=200"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Notes        *string         `json:"notes" validate:"omitempty,max=2000"`
}

// InvoiceCreate prices the session cart, records the invoice, and empties the cart.
func InvoiceCreate(cartSvc cart.Service, invoiceSvc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cartSvc == nil || invoiceSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := cartSvc.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := invoiceSvc.Issue(r.Context(), items, invoice.IssueInput{
			TierID:       body.TierID,
			AddOnIDs:     body.AddOnIDs,
			CustomerName: body.CustomerName,
			AmountPaid:   body.AmountPaid,
			Notes:        body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := cartSvc.Clear(r.Context(), sessionID); err != nil && logg != nil {
			logg.Error(r.Context(), "clear cart after invoice", err)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AdminListInvoices returns issued invoices, newest first.
func AdminListInvoices(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		invoices, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoices)
	}
}

func AdminGetInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		id, err := parsePathID(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
