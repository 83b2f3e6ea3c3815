package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/internal/catalog"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

type stubCatalogService struct {
	catalog.Service

	years   []catalog.YearDTO
	created *catalog.YearDTO
	err     error

	lastCreate catalog.CreateYearInput
	deletedID  uuid.UUID
}

func (s *stubCatalogService) ListYears(ctx context.Context, activeOnly bool) ([]catalog.YearDTO, error) {
	return s.years, s.err
}

func (s *stubCatalogService) CreateYear(ctx context.Context, input catalog.CreateYearInput) (*catalog.YearDTO, error) {
	s.lastCreate = input
	return s.created, s.err
}

func (s *stubCatalogService) DeleteYear(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func withPathID(req *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminCreateYear(t *testing.T) {
	created := &catalog.YearDTO{ID: uuid.New(), Name: "Third Secondary", IsActive: true}
	svc := &stubCatalogService{created: created}
	handler := AdminCreateYear(svc, nil)

	body := strings.NewReader(`{"name":"Third Secondary"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/years", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCreate.Name != "Third Secondary" {
		t.Fatalf("unexpected input name: %q", svc.lastCreate.Name)
	}

	var envelope struct {
		Data catalog.YearDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != created.ID {
		t.Fatalf("unexpected year id: %s", envelope.Data.ID)
	}
}

func TestAdminCreateYearRejectsMissingName(t *testing.T) {
	handler := AdminCreateYear(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/years", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminListYearsPropagatesErrors(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeDependency, "database unavailable")}
	handler := AdminListYears(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/years", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAdminDeleteYearParsesPathID(t *testing.T) {
	svc := &stubCatalogService{}
	handler := AdminDeleteYear(svc, nil)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/years/"+id.String(), nil)
	req = withPathID(req, "yearId", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.deletedID != id {
		t.Fatalf("expected delete of %s got %s", id, svc.deletedID)
	}
}

func TestAdminDeleteYearRejectsBadID(t *testing.T) {
	handler := AdminDeleteYear(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/years/nope", nil)
	req = withPathID(req, "yearId", "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
