package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/api/responses"
	"github.com/kareemadel/printshop-backend/api/validators"
	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/internal/pricing"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

type quoteRequest struct {
	TierID   uuid.UUID   `json:"tier_id" validate:"required"`
	AddOnIDs []uuid.UUID `json:"addon_ids"`
}

// CartQuote prices the current cart against a tier and add-on selection
// without persisting anything.
func CartQuote(cartSvc cart.Service, pricingSvc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cartSvc == nil || pricingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body quoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := cartSvc.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := pricingSvc.Quote(r.Context(), items, body.TierID, body.AddOnIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, breakdown)
	}
}
