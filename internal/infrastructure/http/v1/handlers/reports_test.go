package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/domain/reports"
	"uretimtrack/internal/infrastructure/cache"
	"uretimtrack/internal/infrastructure/http/v1/middleware"
)

type stubReportService struct {
	calls   int
	failErr error
}

func (s *stubReportService) GetProductionReport(ctx context.Context, startDate, endDate time.Time) (*reports.ProductionReport, error) {
	s.calls++
	if s.failErr != nil {
		return nil, s.failErr
	}
	return &reports.ProductionReport{
		StartDate:     startDate,
		EndDate:       endDate,
		TotalQuantity: 120,
		TypeGroups:    []reports.TypeGroup{},
	}, nil
}

func (s *stubReportService) GetProductionTotalsForDate(ctx context.Context, date time.Time) (*reports.ProductionTotals, error) {
	s.calls++
	return &reports.ProductionTotals{}, nil
}

func (s *stubReportService) GetTotalProduced(ctx context.Context, startDate, endDate time.Time) (int, error) {
	s.calls++
	return 42, nil
}

func (s *stubReportService) GetShipmentsForDate(ctx context.Context, date time.Time) ([]reports.ShipmentRecord, error) {
	s.calls++
	return []reports.ShipmentRecord{}, nil
}

func (s *stubReportService) GetShipmentTotalsForDate(ctx context.Context, date time.Time) (*reports.ShipmentTotals, error) {
	s.calls++
	return &reports.ShipmentTotals{}, nil
}

func (s *stubReportService) GetCarryoverCountsForDate(ctx context.Context, date time.Time) ([]reports.CarryoverByType, error) {
	s.calls++
	return []reports.CarryoverByType{}, nil
}

func (s *stubReportService) GetDailyReport(ctx context.Context, date time.Time) (*reports.DailyReport, error) {
	s.calls++
	return &reports.DailyReport{Date: date}, nil
}

func newReportsRouter(svc ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	h := NewReportsHandler(NewBaseHandler(), svc, cache.NewStore(time.Minute))
	r.GET("/reports/production", h.Production)
	r.GET("/reports/production/total", h.TotalProduced)
	r.GET("/reports/daily", h.Daily)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestReportsHandler_ProductionEnvelope(t *testing.T) {
	r := newReportsRouter(&stubReportService{})

	w := doGet(t, r, "/reports/production?startDate=2025-01-01&endDate=2025-01-31")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)

	var report reports.ProductionReport
	require.NoError(t, json.Unmarshal(body.Data, &report))
	assert.Equal(t, 120, report.TotalQuantity)
}

func TestReportsHandler_SecondRequestIsCacheHit(t *testing.T) {
	svc := &stubReportService{}
	r := newReportsRouter(svc)

	url := "/reports/production?startDate=2025-01-01&endDate=2025-01-31"

	first := doGet(t, r, url)
	require.Equal(t, http.StatusOK, first.Code)

	second := doGet(t, r, url)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, svc.calls, "service must be called once")
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestReportsHandler_DifferentRangesMissSeparately(t *testing.T) {
	svc := &stubReportService{}
	r := newReportsRouter(svc)

	doGet(t, r, "/reports/production?startDate=2025-01-01&endDate=2025-01-31")
	w := doGet(t, r, "/reports/production?startDate=2025-02-01&endDate=2025-02-28")

	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 2, svc.calls)
}

func TestReportsHandler_MissingRangeParams(t *testing.T) {
	r := newReportsRouter(&stubReportService{})

	w := doGet(t, r, "/reports/production")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestReportsHandler_InvalidDate(t *testing.T) {
	r := newReportsRouter(&stubReportService{})

	w := doGet(t, r, "/reports/production?startDate=not-a-date&endDate=2025-01-31")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportsHandler_ServiceErrorSurfacesMessage(t *testing.T) {
	svc := &stubReportService{failErr: apperror.NewInternal(assertableErr("orders query timed out"))}
	r := newReportsRouter(svc)

	w := doGet(t, r, "/reports/production?startDate=2025-01-01&endDate=2025-01-31")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "orders query timed out")
}

func TestReportsHandler_TotalProducedShape(t *testing.T) {
	r := newReportsRouter(&stubReportService{})

	w := doGet(t, r, "/reports/production/total?startDate=2025-01-01&endDate=2025-01-31")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalQuantity":42`)
}

func TestReportsHandler_DailyDefaultsToToday(t *testing.T) {
	svc := &stubReportService{}
	r := newReportsRouter(svc)

	w := doGet(t, r, "/reports/daily")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
