package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/app/service"
	"github.com/mrops-br/inventory-api/internal/infrastructure/config"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/response"
	"github.com/mrops-br/inventory-api/internal/infrastructure/repository/flatfile"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type testAPI struct {
	dir     string
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dir := t.TempDir()
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	file := func(name string) *recordstore.File { return recordstore.NewFile(filepath.Join(dir, name)) }

	products, err := flatfile.NewProductRepository(file("products.txt"), tracer, logger)
	require.NoError(t, err)
	suppliers, err := flatfile.NewSupplierRepository(file("suppliers.txt"), tracer, logger)
	require.NoError(t, err)
	orders, err := flatfile.NewOrderRepository(file("orders.txt"), tracer, logger)
	require.NoError(t, err)
	sales, err := flatfile.NewSaleRepository(file("sales.txt"), tracer, logger)
	require.NoError(t, err)

	meterProvider := metricnoop.NewMeterProvider()
	svc := service.NewInventoryService(service.Repositories{
		Products: products, Suppliers: suppliers, Orders: orders, Sales: sales,
	}, 5, tracer, meterProvider.Meter("test"), logger)

	server := NewServer(
		&config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		handler.NewInventoryHandler(svc, logger),
		meterProvider,
		promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		logger,
	)

	return &testAPI{dir: dir, handler: server.Handler()}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestAPI_ProductLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/products", `{"id":"P1","name":"Widget","description":"desc","price":"10.00","stock":"5"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[dto.ProductResponse](t, rec)
	assert.Equal(t, "Product added successfully!", created.Message)

	rec = api.do(t, http.MethodPost, "/products", `{"id":"P1","name":"Again","price":"1","stock":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeBody[response.ErrorResponse](t, rec).Error)

	rec = api.do(t, http.MethodPut, "/products/P1", `{"description":"blue widget"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/products/P1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blue widget", decodeBody[dto.ProductResponse](t, rec).Description)

	rec = api.do(t, http.MethodGet, "/products/P404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody[response.ErrorResponse](t, rec).Error)

	rec = api.do(t, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]dto.ProductResponse](t, rec), 1)

	content, err := os.ReadFile(filepath.Join(api.dir, "products.txt"))
	require.NoError(t, err)
	assert.Equal(t, "P1,Widget,blue widget,10.00,5\n", string(content))
}

func TestAPI_OrderSaleAndReports(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/products", `{"id":"P1","name":"Widget","description":"desc","price":"10.00","stock":"1"}`).Code)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/suppliers", `{"id":"SUP1","name":"Acme","contact":"acme@example.com"}`).Code)

	rec := api.do(t, http.MethodGet, "/reports/low-stock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[dto.ReportResponse](t, rec).Rows, 1)

	rec = api.do(t, http.MethodPost, "/orders", `{"product_name":"Widget","supplier_name":"Acme","quantity":9}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeBody[dto.OrderResponse](t, rec)
	assert.Equal(t, "O1", order.ID)
	assert.Equal(t, 10, order.Stock)

	rec = api.do(t, http.MethodPost, "/sales", `{"product_id":"P1","quantity_sold":11,"start_date":"2024-01-01","end_date":"2024-01-02"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/sales", `{"product_id":"P1","quantity_sold":4,"start_date":"2024-01-01","end_date":"2024-01-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 6, decodeBody[dto.SaleResponse](t, rec).RemainingStock)

	rec = api.do(t, http.MethodGet, "/reports/product-sales", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [][]string{{"S1", "P1", "Widget", "4", "2024-01-01", "2024-01-02"}}, decodeBody[dto.ReportResponse](t, rec).Rows)

	rec = api.do(t, http.MethodGet, "/reports/low-stock?threshold=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[dto.ReportResponse](t, rec).Rows, 1)

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodGet, "/reports/low-stock?threshold=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodGet, "/reports/margins", "").Code)
}

func TestAPI_MalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/suppliers", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = api.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
