package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"uretimtrack/internal/domain/reports"
	"uretimtrack/internal/infrastructure/cache"
	"uretimtrack/internal/infrastructure/http/v1/dto"
)

// Cache namespaces for report responses. Writes to the underlying
// entities invalidate the matching namespaces.
const (
	CacheNSProduction = "reports:production"
	CacheNSShipments  = "reports:shipments"
	CacheNSCarryover  = "reports:carryover"
	CacheNSDaily      = "reports:daily"
)

// ReportService is the reporting surface the handler exposes.
type ReportService interface {
	GetProductionReport(ctx context.Context, startDate, endDate time.Time) (*reports.ProductionReport, error)
	GetProductionTotalsForDate(ctx context.Context, date time.Time) (*reports.ProductionTotals, error)
	GetTotalProduced(ctx context.Context, startDate, endDate time.Time) (int, error)
	GetShipmentsForDate(ctx context.Context, date time.Time) ([]reports.ShipmentRecord, error)
	GetShipmentTotalsForDate(ctx context.Context, date time.Time) (*reports.ShipmentTotals, error)
	GetCarryoverCountsForDate(ctx context.Context, date time.Time) ([]reports.CarryoverByType, error)
	GetDailyReport(ctx context.Context, date time.Time) (*reports.DailyReport, error)
}

// ReportsHandler serves the reporting endpoints. Responses are cached
// per report family; the X-Cache header tells hits from misses.
type ReportsHandler struct {
	*BaseHandler
	service ReportService
	cache   *cache.Store
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service ReportService, store *cache.Store) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		cache:       store,
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func rangeKey(from, to time.Time) string {
	return dayKey(from) + "_" + dayKey(to)
}

// cached serves from the cache when possible, otherwise computes,
// stores and serves fresh data.
func (h *ReportsHandler) cached(c *gin.Context, namespace, key string, compute func() (any, error)) {
	if data, ok := h.cache.Get(namespace, key); ok {
		c.Header("X-Cache", "HIT")
		h.OK(c, data)
		return
	}

	data, err := compute()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cache.Set(namespace, key, data)
	c.Header("X-Cache", "MISS")
	h.OK(c, data)
}

// Production handles GET /reports/production?startDate=&endDate=.
func (h *ReportsHandler) Production(c *gin.Context) {
	var q dto.RangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSProduction, "report_"+rangeKey(start, end), func() (any, error) {
		return h.service.GetProductionReport(c.Request.Context(), start, end)
	})
}

// ProductionTotals handles GET /reports/production/totals?date=.
func (h *ReportsHandler) ProductionTotals(c *gin.Context) {
	var q dto.DateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSProduction, "totals_"+dayKey(date), func() (any, error) {
		return h.service.GetProductionTotalsForDate(c.Request.Context(), date)
	})
}

// TotalProduced handles GET /reports/production/total?startDate=&endDate=.
func (h *ReportsHandler) TotalProduced(c *gin.Context) {
	var q dto.RangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	start, end, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSProduction, "total_"+rangeKey(start, end), func() (any, error) {
		total, err := h.service.GetTotalProduced(c.Request.Context(), start, end)
		if err != nil {
			return nil, err
		}
		return gin.H{"totalQuantity": total}, nil
	})
}

// Shipments handles GET /reports/shipments?date=.
func (h *ReportsHandler) Shipments(c *gin.Context) {
	var q dto.DateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSShipments, "list_"+dayKey(date), func() (any, error) {
		return h.service.GetShipmentsForDate(c.Request.Context(), date)
	})
}

// ShipmentTotals handles GET /reports/shipments/totals?date=.
func (h *ReportsHandler) ShipmentTotals(c *gin.Context) {
	var q dto.DateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSShipments, "totals_"+dayKey(date), func() (any, error) {
		return h.service.GetShipmentTotalsForDate(c.Request.Context(), date)
	})
}

// Carryover handles GET /reports/carryover?date=.
func (h *ReportsHandler) Carryover(c *gin.Context) {
	var q dto.DateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSCarryover, "counts_"+dayKey(date), func() (any, error) {
		return h.service.GetCarryoverCountsForDate(c.Request.Context(), date)
	})
}

// Daily handles GET /reports/daily?date=.
func (h *ReportsHandler) Daily(c *gin.Context) {
	var q dto.DateQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := q.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cached(c, CacheNSDaily, fmt.Sprintf("daily_%s", dayKey(date)), func() (any, error) {
		return h.service.GetDailyReport(c.Request.Context(), date)
	})
}
