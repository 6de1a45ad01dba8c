package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/inventory-api/internal/infrastructure/config"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "inventory-api"

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	handler        *handler.InventoryHandler
	meterProvider  metric.MeterProvider
	metricsHandler http.Handler
	logger         *slog.Logger
	httpServer     *http.Server
}

// NewServer creates a new HTTP server. metricsHandler is mounted on /metrics.
func NewServer(
	cfg *config.ServerConfig,
	handler *handler.InventoryHandler,
	meterProvider metric.MeterProvider,
	metricsHandler http.Handler,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		handler:        handler,
		meterProvider:  meterProvider,
		metricsHandler: metricsHandler,
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.meterProvider.Meter(instrumentationName)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

// setupRoutes maps the inventory menu onto the API
func (s *Server) setupRoutes() {
	s.router.Route("/products", func(r chi.Router) {
		r.Post("/", s.handler.CreateProduct)
		r.Get("/", s.handler.ListProducts)
		r.Get("/{id}", s.handler.GetProduct)
		r.Put("/{id}", s.handler.UpdateProduct)
	})

	s.router.Route("/suppliers", func(r chi.Router) {
		r.Post("/", s.handler.CreateSupplier)
		r.Get("/", s.handler.ListSuppliers)
	})

	s.router.Post("/orders", s.handler.PlaceOrder)
	s.router.Post("/sales", s.handler.RecordSale)
	s.router.Get("/reports/{type}", s.handler.GenerateReport)

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.metricsHandler != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}
}

// Handler returns the router wrapped with otelhttp, which provides
// http.server.request.duration and the request spans
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.meterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
