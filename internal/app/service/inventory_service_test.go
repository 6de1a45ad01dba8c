package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/domain"
	"github.com/mrops-br/inventory-api/internal/infrastructure/repository/flatfile"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type fixture struct {
	dir   string
	svc   *InventoryService
	repos Repositories
}

func newFixture(t *testing.T) *fixture {
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

	repos := Repositories{Products: products, Suppliers: suppliers, Orders: orders, Sales: sales}
	svc := NewInventoryService(repos, 0, tracer, metricnoop.NewMeterProvider().Meter("test"), logger)
	svc.nowFunc = func() time.Time { return time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local) }

	return &fixture{dir: dir, svc: svc, repos: repos}
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(content)
}

func (f *fixture) addWidget(t *testing.T) {
	t.Helper()
	_, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
		ID: "P1", Name: "Widget", Description: "desc", Price: "10.00", Stock: "5",
	})
	require.NoError(t, err)
}

func (f *fixture) addAcme(t *testing.T) {
	t.Helper()
	_, err := f.svc.AddSupplier(context.Background(), &dto.AddSupplierRequest{
		ID: "SUP1", Name: "Acme", Contact: "acme@example.com",
	})
	require.NoError(t, err)
}

func stockOf(t *testing.T, f *fixture, id string) int {
	t.Helper()
	product, err := f.repos.Products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func TestAddProduct_WritesRecord(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
		ID: "P1", Name: "Widget", Description: "desc", Price: "10.00", Stock: "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Product added successfully!", resp.Message)
	assert.Equal(t, "10.00", resp.Price)
	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
}

func TestAddProduct_DuplicateID(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)

	_, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
		ID: "P1", Name: "Other", Description: "x", Price: "1", Stock: "1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		price string
		stock string
		want  error
	}{
		{"empty price", "", "1", domain.ErrInvalidPrice},
		{"non-numeric price", "ten", "1", domain.ErrInvalidPrice},
		{"zero price", "0", "1", domain.ErrInvalidPrice},
		{"negative price", "-2.50", "1", domain.ErrInvalidPrice},
		{"empty stock", "1.00", "", domain.ErrInvalidStock},
		{"fractional stock", "1.00", "1.5", domain.ErrInvalidStock},
		{"negative stock", "1.00", "-1", domain.ErrInvalidStock},
		{"price checked before stock", "x", "x", domain.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
				ID: "P1", Name: "Widget", Price: tt.price, Stock: tt.stock,
			})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.read(t, "products.txt"))
		})
	}
}

func TestAddProduct_BlankIDIsGenerated(t *testing.T) {
	f := newFixture(t)
	f.svc.newID = func() string { return "generated-id" }

	resp, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
		Name: "Widget", Price: "1", Stock: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", resp.ID)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)

	name, stock := "Widget XL", "12"
	resp, err := f.svc.UpdateProduct(context.Background(), "P1", &dto.UpdateProductRequest{Name: &name, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Product P1 updated successfully!", resp.Message)
	assert.Equal(t, "P1,Widget XL,desc,10.00,12\n", f.read(t, "products.txt"))
}

func TestUpdateProduct_RejectsMalformedValues(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)

	bad := "lots"
	_, err := f.svc.UpdateProduct(context.Background(), "P1", &dto.UpdateProductRequest{Stock: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = f.svc.UpdateProduct(context.Background(), "P1", &dto.UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateProduct(context.Background(), "P9", &dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.True(t, domain.IsNotFound(err))
}

func TestAddSupplier_DuplicateID(t *testing.T) {
	f := newFixture(t)
	f.addAcme(t)

	_, err := f.svc.AddSupplier(context.Background(), &dto.AddSupplierRequest{ID: "SUP1", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Equal(t, "SUP1,Acme,acme@example.com\n", f.read(t, "suppliers.txt"))
}

func TestPlaceOrder_IncreasesStock(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)
	f.addAcme(t)

	resp, err := f.svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		ProductName: "Widget", SupplierName: "Acme", Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "O1", resp.ID)
	assert.Equal(t, 12, resp.Stock)
	assert.Equal(t, "Order placed successfully! 7 units of Widget ordered from Acme.", resp.Message)

	assert.Equal(t, 12, stockOf(t, f, "P1"))
	assert.Equal(t, "O1,P1,7,2024-03-01 14:05:09,SUP1\n", f.read(t, "orders.txt"))

	resp, err = f.svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		ProductID: "P1", SupplierID: "SUP1", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "O2", resp.ID)
	assert.Equal(t, 13, stockOf(t, f, "P1"))
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("no suppliers", func(t *testing.T) {
		f := newFixture(t)
		f.addWidget(t)
		_, err := f.svc.PlaceOrder(ctx, &dto.PlaceOrderRequest{ProductName: "Widget", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrNoSuppliers)
	})

	t.Run("no products", func(t *testing.T) {
		f := newFixture(t)
		f.addAcme(t)
		_, err := f.svc.PlaceOrder(ctx, &dto.PlaceOrderRequest{SupplierName: "Acme", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrNoProducts)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		f := newFixture(t)
		f.addWidget(t)
		f.addAcme(t)
		_, err := f.svc.PlaceOrder(ctx, &dto.PlaceOrderRequest{ProductName: "Widget", SupplierName: "Acme", Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, 5, stockOf(t, f, "P1"))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		f := newFixture(t)
		f.addWidget(t)
		f.addAcme(t)
		_, err := f.svc.PlaceOrder(ctx, &dto.PlaceOrderRequest{ProductName: "Widget", SupplierName: "Nobody", Quantity: 2})
		assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
		assert.Equal(t, 5, stockOf(t, f, "P1"))
		assert.Empty(t, f.read(t, "orders.txt"))
	})
}

func TestPlaceOrder_RejectsQuantityOverflowingStock(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)
	f.addAcme(t)

	_, err := f.svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		ProductID: "P1", SupplierID: "SUP1", Quantity: math.MaxInt,
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, domain.IsValidation(err))

	assert.Equal(t, 5, stockOf(t, f, "P1"))
	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
	assert.Empty(t, f.read(t, "orders.txt"))
}

func TestAddProduct_RejectsExponentPrice(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddProduct(context.Background(), &dto.AddProductRequest{
		ID: "P1", Name: "Widget", Description: "desc", Price: "1e-50000000", Stock: "1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Empty(t, f.read(t, "products.txt"))
}

func TestRecordSale_Scenario(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)
	require.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))

	resp, err := f.svc.RecordSale(context.Background(), &dto.RecordSaleRequest{
		ProductID: "P1", QuantitySold: 3, StartDate: "2024-01-01", EndDate: "2024-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "S1", resp.ID)
	assert.Equal(t, 2, resp.RemainingStock)
	assert.Equal(t, "Sales recorded for Widget! Quantity Sold: 3. Remaining Stock: 2.", resp.Message)
	assert.Equal(t, "P1,Widget,desc,10.00,2\n", f.read(t, "products.txt"))
	assert.Equal(t, "S1,P1,Widget,3,2024-01-01,2024-01-02\n", f.read(t, "sales.txt"))

	_, err = f.svc.RecordSale(context.Background(), &dto.RecordSaleRequest{
		ProductID: "P1", QuantitySold: 10, StartDate: "2024-01-01", EndDate: "2024-01-02",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "current stock is 2")
	assert.Equal(t, 2, stockOf(t, f, "P1"))
	assert.Equal(t, "P1,Widget,desc,10.00,2\n", f.read(t, "products.txt"))
	assert.Equal(t, "S1,P1,Widget,3,2024-01-01,2024-01-02\n", f.read(t, "sales.txt"))
}

func TestRecordSale_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RecordSaleRequest
		want error
	}{
		{"zero quantity", dto.RecordSaleRequest{ProductName: "Widget", QuantitySold: 0, StartDate: "2024-01-01", EndDate: "2024-01-01"}, domain.ErrInvalidQuantity},
		{"end before start", dto.RecordSaleRequest{ProductName: "Widget", QuantitySold: 1, StartDate: "2024-01-02", EndDate: "2024-01-01"}, domain.ErrInvalidDateRange},
		{"bad date", dto.RecordSaleRequest{ProductName: "Widget", QuantitySold: 1, StartDate: "01/02/2024", EndDate: "2024-01-01"}, domain.ErrInvalidDate},
		{"unknown product", dto.RecordSaleRequest{ProductName: "Gizmo", QuantitySold: 1, StartDate: "2024-01-01", EndDate: "2024-01-01"}, domain.ErrProductNotFound},
		{"exceeds stock", dto.RecordSaleRequest{ProductName: "Widget", QuantitySold: 6, StartDate: "2024-01-01", EndDate: "2024-01-01"}, domain.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addWidget(t)

			_, err := f.svc.RecordSale(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 5, stockOf(t, f, "P1"))
			assert.Empty(t, f.read(t, "sales.txt"))
		})
	}
}

func TestRecordSale_SellsEntireStock(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)

	resp, err := f.svc.RecordSale(context.Background(), &dto.RecordSaleRequest{
		ProductName: "Widget", QuantitySold: 5, StartDate: "2024-01-01", EndDate: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Zero(t, resp.RemainingStock)
}

func TestRecordSale_NoProducts(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordSale(context.Background(), &dto.RecordSaleRequest{QuantitySold: 1})
	assert.ErrorIs(t, err, domain.ErrNoProducts)
}

func TestGenerateReport_LowStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, p := range []dto.AddProductRequest{
		{ID: "P1", Name: "A", Price: "1", Stock: "4"},
		{ID: "P2", Name: "B", Price: "1", Stock: "5"},
		{ID: "P3", Name: "C", Price: "1", Stock: "0"},
		{ID: "P4", Name: "D", Price: "1", Stock: "9"},
	} {
		_, err := f.svc.AddProduct(ctx, &p)
		require.NoError(t, err)
	}

	report, err := f.svc.GenerateReport(ctx, "low-stock", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Threshold)
	assert.Equal(t, dto.ProductColumns, report.Columns)
	assert.Equal(t, [][]string{{"P1", "A", "", "1", "4"}, {"P3", "C", "", "1", "0"}}, report.Rows)

	threshold := 10
	report, err = f.svc.GenerateReport(ctx, "Low Stock", &threshold)
	require.NoError(t, err)
	assert.Len(t, report.Rows, 4)

	threshold = 0
	_, err = f.svc.GenerateReport(ctx, "low-stock", &threshold)
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestGenerateReport_EmptyTables(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.svc.GenerateReport(ctx, "low-stock", nil)
	require.NoError(t, err)
	assert.Equal(t, "No products with low stock.", report.Message)

	report, err = f.svc.GenerateReport(ctx, "product-sales", nil)
	require.NoError(t, err)
	assert.Equal(t, "No sales recorded yet.", report.Message)
	assert.Empty(t, report.Rows)

	report, err = f.svc.GenerateReport(ctx, "supplier-orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "No orders available.", report.Message)

	_, err = f.svc.GenerateReport(ctx, "profit", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
}

func TestGenerateReport_SalesAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addWidget(t)
	f.addAcme(t)

	_, err := f.svc.PlaceOrder(ctx, &dto.PlaceOrderRequest{ProductName: "Widget", SupplierName: "Acme", Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.RecordSale(ctx, &dto.RecordSaleRequest{ProductName: "Widget", QuantitySold: 1, StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	sales, err := f.svc.GenerateReport(ctx, "product-sales", nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"S1", "P1", "Widget", "1", "2024-01-01", "2024-01-31"}}, sales.Rows)

	orders, err := f.svc.GenerateReport(ctx, "supplier-orders", nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"O1", "P1", "2", "2024-03-01 14:05:09", "SUP1"}}, orders.Rows)
}

// failingSales accepts every call but refuses to persist
type failingSales struct {
	domain.SaleRepository
}

func (failingSales) Create(context.Context, *domain.Sale) error {
	return errors.New("disk full")
}

func TestRecordSale_RestoresStockWhenSaleWriteFails(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)
	f.svc.sales = failingSales{SaleRepository: f.repos.Sales}

	_, err := f.svc.RecordSale(context.Background(), &dto.RecordSaleRequest{
		ProductID: "P1", QuantitySold: 3, StartDate: "2024-01-01", EndDate: "2024-01-02",
	})
	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
	assert.Equal(t, 5, stockOf(t, f, "P1"))
	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
}

type failingOrders struct {
	domain.OrderRepository
}

func (failingOrders) Create(context.Context, *domain.Order) error {
	return errors.New("disk full")
}

func TestPlaceOrder_RestoresStockWhenOrderWriteFails(t *testing.T) {
	f := newFixture(t)
	f.addWidget(t)
	f.addAcme(t)
	f.svc.orders = failingOrders{OrderRepository: f.repos.Orders}

	_, err := f.svc.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		ProductName: "Widget", SupplierName: "Acme", Quantity: 4,
	})
	require.Error(t, err)
	assert.Equal(t, 5, stockOf(t, f, "P1"))
	assert.Equal(t, "P1,Widget,desc,10.00,5\n", f.read(t, "products.txt"))
}
