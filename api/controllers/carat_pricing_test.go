package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogsvc "github.com/liorgem/diamondlab-backend/internal/catalog"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestListCaratPricing(t *testing.T) {
	logg := testLogger()

	t.Run("passes include_inactive through", func(t *testing.T) {
		stub := &stubCatalogService{
			entries: []catalogsvc.EntryDTO{{ID: uuid.New(), CaratWeight: decimal.RequireFromString("0.50")}},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/carat-pricing?include_inactive=true", nil)
		rec := httptest.NewRecorder()
		ListCaratPricing(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.listedInactive {
			t.Fatalf("expected include_inactive to reach the service")
		}
	})

	t.Run("nil service is an internal error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/carat-pricing", nil)
		rec := httptest.NewRecorder()
		ListCaratPricing(nil, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestGetCaratPricingByWeight(t *testing.T) {
	logg := testLogger()

	makeRequest := func(weight string, stub *stubCatalogService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/carat-pricing/weight/"+weight, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("weight", weight)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		GetCaratPricingByWeight(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubCatalogService{
			entry: &catalogsvc.EntryDTO{ID: uuid.New(), CaratWeight: decimal.RequireFromString("1.5")},
		}
		rec := makeRequest("1.5", stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("malformed weight", func(t *testing.T) {
		rec := makeRequest("one-point-five", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed weight, got %d", rec.Code)
		}
	})

	t.Run("unknown weight", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "carat weight not found")}
		rec := makeRequest("9.99", stub)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCreateCaratPricing(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubCatalogService{
			entry: &catalogsvc.EntryDTO{ID: uuid.New(), CaratWeight: decimal.RequireFromString("0.75")},
		}
		body := `{"carat_weight": "0.75", "multiplier": "0.85"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carat-pricing", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreateCaratPricing(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil || !stub.created.CaratWeight.Equal(decimal.RequireFromString("0.75")) {
			t.Fatalf("expected create input to reach the service, got %+v", stub.created)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		body := `{"carat_weight": "0.75", "multiplier": "0.85", "weight_unit": "ct"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carat-pricing", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateCaratPricing(&stubCatalogService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
		}
	})

	t.Run("duplicate weight maps to 409", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeDuplicateKey, "carat weight already exists")}
		body := `{"carat_weight": "0.75", "multiplier": "0.85"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carat-pricing", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateCaratPricing(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestDeleteCaratPricing(t *testing.T) {
	logg := testLogger()
	entryID := uuid.New()

	makeRequest := func(id string, stub *stubCatalogService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/carat-pricing/"+id, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		DeleteCaratPricing(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := makeRequest(entryID.String(), stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.deleted != entryID {
			t.Fatalf("expected delete to reach the service")
		}
		var envelope struct {
			Data map[string]string `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if envelope.Data["status"] != "deleted" {
			t.Fatalf("expected deleted status, got %+v", envelope.Data)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := makeRequest("not-a-uuid", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("referenced entry maps to 409", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeConflict, "carat weight is linked to products")}
		rec := makeRequest(entryID.String(), stub)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

type stubCatalogService struct {
	entries        []catalogsvc.EntryDTO
	entry          *catalogsvc.EntryDTO
	err            error
	listedInactive bool
	created        *catalogsvc.CreateEntryInput
	deleted        uuid.UUID
}

func (s *stubCatalogService) List(ctx context.Context, includeInactive bool) ([]catalogsvc.EntryDTO, error) {
	s.listedInactive = includeInactive
	return s.entries, s.err
}

func (s *stubCatalogService) GetByWeight(ctx context.Context, weight decimal.Decimal) (*catalogsvc.EntryDTO, error) {
	return s.entry, s.err
}

func (s *stubCatalogService) Create(ctx context.Context, input catalogsvc.CreateEntryInput) (*catalogsvc.EntryDTO, error) {
	s.created = &input
	return s.entry, s.err
}

func (s *stubCatalogService) Update(ctx context.Context, id uuid.UUID, input catalogsvc.UpdateEntryInput) (*catalogsvc.EntryDTO, error) {
	return s.entry, s.err
}

func (s *stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.err
}
