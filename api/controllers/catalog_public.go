package controllers

import (
	"net/http"

	"github.com/kareemadel/printshop-backend/api/responses"
	"github.com/kareemadel/printshop-backend/internal/catalog"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

// CatalogYears lists active academic years for browsing.
func CatalogYears(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		years, err := svc.CustomerYears(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, years)
	}
}

// CatalogSubjects lists active subjects under an active year.
func CatalogSubjects(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		yearID, err := parsePathID(r, "yearId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subjects, err := svc.CustomerSubjects(r.Context(), yearID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, subjects)
	}
}

// CatalogBooks lists active books under a visible subject.
func CatalogBooks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		subjectID, err := parsePathID(r, "subjectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		books, err := svc.CustomerBooks(r.Context(), subjectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, books)
	}
}

// CatalogBookTree returns all visible books grouped by year and subject.
func CatalogBookTree(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		tree, err := svc.CustomerBookTree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tree)
	}
}

// CatalogOptions lists the active print tiers and add-ons offered at checkout.
func CatalogOptions(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		options, err := svc.CustomerOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}
