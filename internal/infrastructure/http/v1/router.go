package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain"
	"uretimtrack/internal/domain/catalogs/cycletime"
	"uretimtrack/internal/domain/catalogs/operation"
	"uretimtrack/internal/domain/catalogs/product"
	"uretimtrack/internal/domain/documents/order"
	"uretimtrack/internal/domain/documents/packing"
	"uretimtrack/internal/domain/documents/shipment"
	"uretimtrack/internal/domain/documents/trackingform"
	"uretimtrack/internal/domain/reports"
	"uretimtrack/internal/infrastructure/cache"
	"uretimtrack/internal/infrastructure/http/v1/dto"
	"uretimtrack/internal/infrastructure/http/v1/handlers"
	"uretimtrack/internal/infrastructure/http/v1/middleware"
	"uretimtrack/internal/infrastructure/storage/postgres"
	"uretimtrack/internal/infrastructure/storage/postgres/catalog_repo"
	"uretimtrack/internal/infrastructure/storage/postgres/document_repo"
	"uretimtrack/internal/infrastructure/storage/postgres/report_repo"
	"uretimtrack/pkg/logger"
	"uretimtrack/pkg/numerator"
)

// RouterConfig holds router dependencies and limits.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger

	// Audit records entity changes; nil disables auditing.
	Audit *postgres.AuditStore

	// Cache stores report responses. Required.
	Cache *cache.Store

	// RequestsPerMinute limits every API request per client IP.
	RequestsPerMinute int

	// BulkPerHour limits bulk inserts per client IP.
	BulkPerHour int

	// MaxBulkRecords caps how many records one bulk request may carry.
	MaxBulkRecords int
}

func (cfg *RouterConfig) defaults() {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 120
	}
	if cfg.BulkPerHour <= 0 {
		cfg.BulkPerHour = 20
	}
	if cfg.MaxBulkRecords <= 0 {
		cfg.MaxBulkRecords = 250
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewStore(5 * time.Minute)
	}
}

// NewRouter creates and configures the gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	cfg.defaults()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Order matters: recovery first, error rendering last before handlers.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Limiters live as long as the router, shared across requests.
	apiLimiter := middleware.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)
	bulkLimiter := middleware.NewRateLimiter(cfg.BulkPerHour, time.Hour)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(apiLimiter))

	registerEntityRoutes(api, cfg, bulkLimiter)
	registerReportRoutes(api, cfg)

	return router
}

// registerEntityRoutes wires repositories, services and handlers for
// every catalog and document entity.
func registerEntityRoutes(rg *gin.RouterGroup, cfg RouterConfig, bulkLimiter *middleware.RateLimiter) {
	base := handlers.NewBaseHandler()

	operationRepo := catalog_repo.NewOperationRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	cycleTimeRepo := catalog_repo.NewCycleTimeRepo(cfg.TxManager)

	catalogs := rg.Group("/catalog")

	// --- OPERATIONS ---
	{
		service := operation.NewService(operationRepo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "operation",
			func(e *operation.Operation) id.ID { return e.ID },
			handlers.CacheNSProduction, handlers.CacheNSDaily)

		handler := handlers.NewCatalogEntityHandler(base, service, handlers.EntityHandlerConfig[*operation.Operation, dto.CreateOperationRequest, dto.UpdateOperationRequest]{
			Service:    service,
			EntityName: "operation",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateOperationRequest) (*operation.Operation, error) {
				return req.ToEntity(), nil
			},
			MapUpdate: func(req dto.UpdateOperationRequest, existing *operation.Operation) error {
				req.ApplyTo(existing)
				return nil
			},
		})
		RegisterCatalogRoutes(catalogs.Group("/operations"), handler, bulkLimiter)
	}

	// --- PRODUCTS ---
	{
		service := product.NewService(productRepo, operationRepo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "product",
			func(e *product.Product) id.ID { return e.ID },
			handlers.CacheNSProduction, handlers.CacheNSCarryover, handlers.CacheNSDaily)

		handler := handlers.NewCatalogEntityHandler(base, service, handlers.EntityHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
			Service:    service,
			EntityName: "product",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateProductRequest) (*product.Product, error) {
				return req.ToEntity()
			},
			MapUpdate: func(req dto.UpdateProductRequest, existing *product.Product) error {
				return req.ApplyTo(existing)
			},
		})
		RegisterCatalogRoutes(catalogs.Group("/products"), handler, bulkLimiter)
	}

	// --- CYCLE TIMES ---
	{
		service := cycletime.NewService(cycleTimeRepo, productRepo, operationRepo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "cycle_time",
			func(e *cycletime.CycleTime) id.ID { return e.ID })

		handler := handlers.NewEntityHandler(base, handlers.EntityHandlerConfig[*cycletime.CycleTime, dto.CreateCycleTimeRequest, dto.UpdateCycleTimeRequest]{
			Service:    service,
			EntityName: "cycle_time",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateCycleTimeRequest) (*cycletime.CycleTime, error) {
				return req.ToEntity()
			},
			MapUpdate: func(req dto.UpdateCycleTimeRequest, existing *cycletime.CycleTime) error {
				req.ApplyTo(existing)
				return nil
			},
		})
		RegisterEntityRoutes(catalogs.Group("/cycle-times"), handler, bulkLimiter)
	}

	documents := rg.Group("/document")

	// --- TRACKING FORMS ---
	{
		repo := document_repo.NewTrackingFormRepo(cfg.TxManager)
		service := trackingform.NewService(repo, productRepo, operationRepo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "tracking_form",
			func(e *trackingform.TrackingForm) id.ID { return e.ID },
			handlers.CacheNSProduction, handlers.CacheNSDaily)

		handler := handlers.NewEntityHandler(base, handlers.EntityHandlerConfig[*trackingform.TrackingForm, dto.CreateTrackingFormRequest, dto.UpdateTrackingFormRequest]{
			Service:    service,
			EntityName: "tracking_form",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateTrackingFormRequest) (*trackingform.TrackingForm, error) {
				return req.ToEntity()
			},
			MapUpdate: func(req dto.UpdateTrackingFormRequest, existing *trackingform.TrackingForm) error {
				return req.ApplyTo(existing)
			},
		})
		RegisterEntityRoutes(documents.Group("/tracking-forms"), handler, bulkLimiter)
	}

	// --- PACKINGS ---
	{
		repo := document_repo.NewPackingRepo(cfg.TxManager)
		service := packing.NewService(repo, productRepo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "packing",
			func(e *packing.Packing) id.ID { return e.ID })

		handler := handlers.NewEntityHandler(base, handlers.EntityHandlerConfig[*packing.Packing, dto.CreatePackingRequest, dto.UpdatePackingRequest]{
			Service:    service,
			EntityName: "packing",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreatePackingRequest) (*packing.Packing, error) {
				return req.ToEntity(), nil
			},
			MapUpdate: func(req dto.UpdatePackingRequest, existing *packing.Packing) error {
				req.ApplyTo(existing)
				return nil
			},
		})
		RegisterEntityRoutes(documents.Group("/packings"), handler, bulkLimiter)
	}

	// --- ORDERS ---
	{
		repo := document_repo.NewOrderRepo(cfg.TxManager)
		// Document numbers are reserved outside of business transactions,
		// so the generator talks to the pool directly.
		numbers := numerator.New(cfg.Pool)
		service := order.NewService(repo, productRepo, numbers, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "order",
			func(e *order.Order) id.ID { return e.ID },
			handlers.CacheNSCarryover, handlers.CacheNSDaily)

		handler := handlers.NewEntityHandler(base, handlers.EntityHandlerConfig[*order.Order, dto.CreateOrderRequest, dto.UpdateOrderRequest]{
			Service:    service,
			EntityName: "order",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateOrderRequest) (*order.Order, error) {
				return req.ToEntity(), nil
			},
			MapUpdate: func(req dto.UpdateOrderRequest, existing *order.Order) error {
				req.ApplyTo(existing)
				return nil
			},
		})
		RegisterEntityRoutes(documents.Group("/orders"), handler, bulkLimiter)
	}

	// --- SHIPMENTS ---
	{
		repo := document_repo.NewShipmentRepo(cfg.TxManager)
		service := shipment.NewService(repo, cfg.TxManager)
		registerWriteHooks(service.Hooks(), cfg, "shipment",
			func(e *shipment.Shipment) id.ID { return e.ID },
			handlers.CacheNSShipments, handlers.CacheNSDaily)

		handler := handlers.NewEntityHandler(base, handlers.EntityHandlerConfig[*shipment.Shipment, dto.CreateShipmentRequest, dto.UpdateShipmentRequest]{
			Service:    service,
			EntityName: "shipment",
			MaxBulk:    cfg.MaxBulkRecords,
			MapCreate: func(req dto.CreateShipmentRequest) (*shipment.Shipment, error) {
				return req.ToEntity(), nil
			},
			MapUpdate: func(req dto.UpdateShipmentRequest, existing *shipment.Shipment) error {
				req.ApplyTo(existing)
				return nil
			},
		})
		RegisterEntityRoutes(documents.Group("/shipments"), handler, bulkLimiter)
	}
}

// registerReportRoutes registers the reporting endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	base := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	handler := handlers.NewReportsHandler(base, reportService, cfg.Cache)

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/production", handler.Production)
	reportsGroup.GET("/production/totals", handler.ProductionTotals)
	reportsGroup.GET("/production/total", handler.TotalProduced)
	reportsGroup.GET("/shipments", handler.Shipments)
	reportsGroup.GET("/shipments/totals", handler.ShipmentTotals)
	reportsGroup.GET("/carryover", handler.Carryover)
	reportsGroup.GET("/daily", handler.Daily)
}

// registerWriteHooks attaches cache invalidation and audit logging to
// an entity's write lifecycle. Every write drops the dependent report
// namespaces; audit records the entity state after the change.
func registerWriteHooks[T entity.Validatable](
	hooks *domain.HookRegistry[T],
	cfg RouterConfig,
	entityType string,
	getID func(T) id.ID,
	namespaces ...string,
) {
	invalidate := func() {
		for _, ns := range namespaces {
			cfg.Cache.InvalidateNamespace(ns)
		}
	}

	log := func(ctx context.Context, e T, action postgres.AuditAction) error {
		invalidate()
		if cfg.Audit == nil {
			return nil
		}
		return cfg.Audit.LogChange(ctx, entityType, getID(e), action, postgres.StructToMap(e))
	}

	hooks.On(domain.AfterCreate, func(ctx context.Context, e T) error {
		return log(ctx, e, postgres.AuditActionCreate)
	})
	hooks.On(domain.AfterUpdate, func(ctx context.Context, e T) error {
		return log(ctx, e, postgres.AuditActionUpdate)
	})
	hooks.On(domain.AfterDelete, func(ctx context.Context, e T) error {
		return log(ctx, e, postgres.AuditActionDeactivate)
	})
}
