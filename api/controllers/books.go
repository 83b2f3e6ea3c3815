package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/api/responses"
	"github.com/kareemadel/printshop-backend/api/validators"
	"github.com/kareemadel/printshop-backend/internal/catalog"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

type createBookRequest struct {
	SubjectID   uuid.UUID `json:"subject_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=200"`
	PageCount   int       `json:"page_count" validate:"required,gt=0"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool     `json:"is_active"`
}

type updateBookRequest struct {
	SubjectID   *uuid.UUID `json:"subject_id"`
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	PageCount   *int       `json:"page_count" validate:"omitempty,gt=0"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool      `json:"is_active"`
}

// AdminListBooks returns books, optionally filtered by subject via ?subject_id.
func AdminListBooks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		subjectID, err := validators.ParseQueryUUID(r, "subject_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		books, err := svc.ListBooks(r.Context(), subjectID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, books)
	}
}

func AdminCreateBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createBookRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.CreateBook(r.Context(), catalog.CreateBookInput{
			SubjectID:   body.SubjectID,
			Name:        body.Name,
			PageCount:   body.PageCount,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

func AdminUpdateBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBookRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.UpdateBook(r.Context(), id, catalog.UpdateBookInput{
			SubjectID:   body.SubjectID,
			Name:        body.Name,
			PageCount:   body.PageCount,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

func AdminDeleteBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBook(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
