package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/internal/invoice"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

type stubInvoiceService struct {
	dto  *invoice.DTO
	list []invoice.DTO
	err  error

	lastItems []cartsvc.Item
	lastInput invoice.IssueInput
}

func (s *stubInvoiceService) Issue(ctx context.Context, items []cartsvc.Item, input invoice.IssueInput) (*invoice.DTO, error) {
	s.lastItems = items
	s.lastInput = input
	return s.dto, s.err
}

func (s *stubInvoiceService) Get(ctx context.Context, id uuid.UUID) (*invoice.DTO, error) {
	return s.dto, s.err
}

func (s *stubInvoiceService) List(ctx context.Context) ([]invoice.DTO, error) {
	return s.list, s.err
}

func TestInvoiceCreateClearsCart(t *testing.T) {
	tierID := uuid.New()
	items := []cartsvc.Item{{BookID: uuid.New(), Name: "Algebra", PageCount: 130}}
	dto := &invoice.DTO{
		ID:           uuid.New(),
		CustomerName: "Mona",
		TotalCost:    decimal.RequireFromString("70.9"),
		AmountPaid:   decimal.RequireFromString("50"),
		BalanceDue:   decimal.RequireFromString("20.9"),
	}
	carts := &stubCartService{items: items}
	invoices := &stubInvoiceService{dto: dto}
	handler := InvoiceCreate(carts, invoices, nil)

	body := strings.NewReader(`{"tier_id":"` + tierID.String() + `","customer_name":"Mona","amount_paid":"50"}`)
	req := withCartSession(httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if !carts.cleared {
		t.Fatal("expected cart to be cleared after issuing")
	}
	if invoices.lastInput.TierID != tierID {
		t.Fatalf("unexpected tier id: %s", invoices.lastInput.TierID)
	}
	if len(invoices.lastItems) != 1 || invoices.lastItems[0].Name != "Algebra" {
		t.Fatalf("unexpected items passed to issue: %+v", invoices.lastItems)
	}

	var envelope struct {
		Data invoice.DTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.BalanceDue.Equal(decimal.RequireFromString("20.9")) {
		t.Fatalf("unexpected balance due: %s", envelope.Data.BalanceDue)
	}
}

func TestInvoiceCreateRejectsMissingCustomerName(t *testing.T) {
	handler := InvoiceCreate(&stubCartService{}, &stubInvoiceService{}, nil)

	body := strings.NewReader(`{"tier_id":"` + uuid.NewString() + `"}`)
	req := withCartSession(httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestInvoiceCreateKeepsCartOnFailure(t *testing.T) {
	carts := &stubCartService{}
	invoices := &stubInvoiceService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")}
	handler := InvoiceCreate(carts, invoices, nil)

	body := strings.NewReader(`{"tier_id":"` + uuid.NewString() + `","customer_name":"Mona"}`)
	req := withCartSession(httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	if carts.cleared {
		t.Fatal("cart must not be cleared when issuing fails")
	}
}

func TestAdminGetInvoice(t *testing.T) {
	dto := &invoice.DTO{ID: uuid.New(), CustomerName: "Mona"}
	handler := AdminGetInvoice(&stubInvoiceService{dto: dto}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/invoices/"+dto.ID.String(), nil)
	req = withPathID(req, "invoiceId", dto.ID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data invoice.DTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != dto.ID {
		t.Fatalf("unexpected invoice id: %s", envelope.Data.ID)
	}
}
