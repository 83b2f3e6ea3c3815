package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/api/responses"
	"github.com/kareemadel/printshop-backend/api/validators"
	"github.com/kareemadel/printshop-backend/internal/catalog"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

type createPrintTierRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"required"`
	PagesPerUnit int             `json:"pages_per_unit" validate:"required,gt=0"`
	Description  *string         `json:"description" validate:"omitempty,max=2000"`
	IsActive     *bool           `json:"is_active"`
}

type updatePrintTierRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	PagesPerUnit *int             `json:"pages_per_unit" validate:"omitempty,gt=0"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	IsActive     *bool            `json:"is_active"`
}

func AdminListPrintTiers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tiers, err := svc.ListPrintTiers(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tiers)
	}
}

func AdminCreatePrintTier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createPrintTierRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.CreatePrintTier(r.Context(), catalog.CreatePrintTierInput{
			Name:         body.Name,
			PricePerUnit: body.PricePerUnit,
			PagesPerUnit: body.PagesPerUnit,
			Description:  body.Description,
			IsActive:     body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tier)
	}
}

func AdminUpdatePrintTier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePrintTierRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.UpdatePrintTier(r.Context(), id, catalog.UpdatePrintTierInput{
			Name:         body.Name,
			PricePerUnit: body.PricePerUnit,
			PagesPerUnit: body.PagesPerUnit,
			Description:  body.Description,
			IsActive:     body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tier)
	}
}

func AdminDeletePrintTier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePrintTier(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
