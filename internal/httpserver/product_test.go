package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/domain"
	"product-catalog/internal/factory"
)

type stubService struct {
	createProduct *domain.Product
	createErr     error
	lastRecord    map[string]any
	listResult    []domain.Product
	listErr       error
	deleteCount   int64
	deleteErr     error
	lastIDs       []int64
}

func (s *stubService) Create(_ context.Context, record map[string]any) (*domain.Product, error) {
	s.lastRecord = record
	return s.createProduct, s.createErr
}

func (s *stubService) List(_ context.Context) ([]domain.Product, error) {
	return s.listResult, s.listErr
}

func (s *stubService) MassDelete(_ context.Context, ids []int64) (int64, error) {
	s.lastIDs = ids
	return s.deleteCount, s.deleteErr
}

func testRouter(t *testing.T, svc ProductService, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	return buildRouter(logger, nil, Deps{ProductSvc: svc}, opts)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestCreateProduct_DVD(t *testing.T) {
	svc := &stubService{createProduct: &domain.Product{ID: 7}}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodPost, "/products",
		`{"sku":"DVD123","name":"Test DVD","price":15.99,"type":"DVD","size":700}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" || body["id"] != float64(7) {
		t.Fatalf("unexpected body %v", body)
	}
	if svc.lastRecord["sku"] != "DVD123" {
		t.Fatalf("record not forwarded: %v", svc.lastRecord)
	}
}

func TestCreateProduct_ValidationError(t *testing.T) {
	svc := &stubService{createErr: domain.NewValidationError("Please provide weight in KG (positive number)")}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodPost, "/products",
		`{"sku":"BOOK1","name":"Book","price":10,"type":"Book","weight":-5}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "error" || body["message"] != "Please provide weight in KG (positive number)" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc := &stubService{createErr: domain.ErrDuplicateSKU}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodPost, "/products",
		`{"sku":"DVD123","name":"Test DVD","price":15.99,"type":"DVD","size":700}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "SKU already exists" {
		t.Fatalf("duplicate message is a client contract, got %v", body["message"])
	}
}

func TestCreateProduct_MalformedBody(t *testing.T) {
	router := testRouter(t, &stubService{}, Options{})

	for _, body := range []string{"", "not json", "{}"} {
		rec := doJSON(router, http.MethodPost, "/products", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %q: expected 422, got %d", body, rec.Code)
		}
		if decoded := decodeBody(t, rec); decoded["message"] != "Invalid input data" {
			t.Fatalf("body %q: unexpected message %v", body, decoded["message"])
		}
	}
}

func TestCreateProduct_StorageErrorSanitized(t *testing.T) {
	svc := &stubService{createErr: errors.New("pq: connection refused on 10.0.0.5")}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodPost, "/products",
		`{"sku":"DVD123","name":"Test DVD","price":15.99,"type":"DVD","size":700}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Database error occurred" {
		t.Fatalf("production error must be generic, got %v", body["message"])
	}
}

func TestCreateProduct_StorageErrorDetailedInDevelopment(t *testing.T) {
	svc := &stubService{createErr: errors.New("pq: connection refused on 10.0.0.5")}
	router := testRouter(t, svc, Options{Development: true})

	rec := doJSON(router, http.MethodPost, "/products",
		`{"sku":"DVD123","name":"Test DVD","price":15.99,"type":"DVD","size":700}`)

	if body := decodeBody(t, rec); body["message"] != "pq: connection refused on 10.0.0.5" {
		t.Fatalf("development error should carry detail, got %v", body["message"])
	}
}

func TestListProducts_SparseProjection(t *testing.T) {
	size := 700.0
	svc := &stubService{listResult: []domain.Product{
		{ID: 1, SKU: "DVD123", Name: "Test DVD", Price: 15.99, Type: domain.TypeDVD, Size: &size},
		{ID: 2, SKU: "FRN1", Name: "Desk", Price: 199.99, Type: domain.TypeFurniture,
			Dimensions: &domain.Dimensions{Height: 100, Width: 50, Length: 75}},
	}}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("unexpected data %v", body["data"])
	}

	dvd := data[0].(map[string]any)
	if dvd["size"] != float64(700) {
		t.Fatalf("dvd size missing: %v", dvd)
	}
	for _, absent := range []string{"weight", "height", "width", "length"} {
		if _, present := dvd[absent]; present {
			t.Fatalf("dvd row must omit %s: %v", absent, dvd)
		}
	}

	furniture := data[1].(map[string]any)
	if furniture["height"] != float64(100) || furniture["width"] != float64(50) || furniture["length"] != float64(75) {
		t.Fatalf("furniture dimensions missing: %v", furniture)
	}
	for _, absent := range []string{"size", "weight"} {
		if _, present := furniture[absent]; present {
			t.Fatalf("furniture row must omit %s: %v", absent, furniture)
		}
	}
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	router := testRouter(t, &stubService{}, Options{})

	rec := doJSON(router, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty array, got %v", body["data"])
	}
}

func TestMassDelete(t *testing.T) {
	svc := &stubService{deleteCount: 2}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodDelete, "/mass-delete", `{"ids":[1,2]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "2 products deleted successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if len(svc.lastIDs) != 2 || svc.lastIDs[0] != 1 {
		t.Fatalf("ids not forwarded: %v", svc.lastIDs)
	}
}

func TestMassDelete_IDsRequired(t *testing.T) {
	router := testRouter(t, &stubService{}, Options{})

	for _, body := range []string{`{}`, `{"ids":"1,2"}`, `{"ids":5}`, ``} {
		rec := doJSON(router, http.MethodDelete, "/mass-delete", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %q: expected 422, got %d", body, rec.Code)
		}
		if decoded := decodeBody(t, rec); decoded["message"] != "Invalid input: ids array required" {
			t.Fatalf("body %q: unexpected message %v", body, decoded["message"])
		}
	}
}

func TestMassDelete_EmptyArrayIsNoOp(t *testing.T) {
	svc := &stubService{deleteCount: 0}
	router := testRouter(t, svc, Options{})

	rec := doJSON(router, http.MethodDelete, "/mass-delete", `{"ids":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "0 products deleted successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t, &stubService{}, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected CORS headers on preflight")
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := testRouter(t, &stubService{}, Options{})

	rec := doJSON(router, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRoundTripThroughFactory(t *testing.T) {
	// POST record -> factory -> sparse GET projection keeps the variant
	// shape end to end.
	p, err := factory.FromInput(map[string]any{
		"sku": "FRN1", "name": "Desk", "price": 199.99, "type": "Furniture",
		"height": 100.0, "width": 50.0, "length": 75.0,
	})
	if err != nil {
		t.Fatalf("FromInput: %v", err)
	}
	p.ID = 1

	router := testRouter(t, &stubService{listResult: []domain.Product{*p}}, Options{})
	rec := doJSON(router, http.MethodGet, "/products", "")

	body := decodeBody(t, rec)
	row := body["data"].([]any)[0].(map[string]any)
	if row["type"] != "Furniture" || row["height"] != float64(100) {
		t.Fatalf("round trip lost variant shape: %v", row)
	}
	if _, present := row["size"]; present {
		t.Fatalf("furniture row must omit size: %v", row)
	}
}
