package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
)

// fakeRepo is an in-memory Repository for exercising the aggregation logic.
type fakeRepo struct {
	products  []ProductInfo
	rows      []TrackingRow
	orders    []OrderInfo
	shipments []ShipmentRecord

	failWith error
}

func (f *fakeRepo) ActiveProducts(ctx context.Context) ([]ProductInfo, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.products, nil
}

func (f *fakeRepo) ProductTypesByCode(ctx context.Context, codes []string) (map[string]string, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	wanted := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		wanted[c] = struct{}{}
	}
	result := make(map[string]string)
	for _, p := range f.products {
		if _, ok := wanted[p.ProductCode]; ok {
			result[p.ProductCode] = p.Type
		}
	}
	return result, nil
}

func (f *fakeRepo) ActiveTrackingRows(ctx context.Context, from, to time.Time) ([]TrackingRow, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var result []TrackingRow
	for _, r := range f.rows {
		if !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRepo) ActiveOrders(ctx context.Context) ([]OrderInfo, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.orders, nil
}

func (f *fakeRepo) ActiveShipments(ctx context.Context, from, to time.Time) ([]ShipmentRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var result []ShipmentRecord
	for _, s := range f.shipments {
		if !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

var (
	opCasting   = id.MustParse("018f0000-0000-7000-8000-000000000001")
	opMachining = id.MustParse("018f0000-0000-7000-8000-000000000002")
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestProductionReport_SingleProductScenario(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Brake Disk 280", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 100, OperatorEfficiency: fptr(0.8)},
		},
	}
	svc := NewService(repo)

	report, err := svc.GetProductionReport(context.Background(), day(2024, 1, 5), day(2024, 1, 5))
	require.NoError(t, err)

	require.Len(t, report.TypeGroups, 1)
	group := report.TypeGroups[0]
	assert.Equal(t, "Disk", group.TypeName)
	require.Len(t, group.Products, 1)
	assert.Equal(t, "P1", group.Products[0].ProductCode)
	assert.Equal(t, 100, group.Products[0].Quantity)
	assert.Equal(t, 100, group.TotalQuantity)
	assert.Equal(t, 100, report.TotalQuantity)

	totals, err := svc.GetProductionTotalsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 100, totals.DiskTotal)
	assert.Equal(t, 0, totals.KampanaTotal)
	assert.Equal(t, 0, totals.PoyraTotal)
	assert.Equal(t, 100, totals.CombinedTotal)
	assert.InDelta(t, 0.8, totals.AverageOperatorEfficiency, 1e-9)
}

func TestProductionReport_RangeCoversWholeDays(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: at(2024, 3, 10, 23, 59), Quantity: 7},
			{ProductCode: "P1", OperationID: opMachining, Date: at(2024, 3, 11, 0, 0), Quantity: 100},
		},
	}
	svc := NewService(repo)

	report, err := svc.GetProductionReport(context.Background(), day(2024, 3, 10), day(2024, 3, 10))
	require.NoError(t, err)

	// The 23:59 row on the 10th counts; the midnight row on the 11th does not.
	assert.Equal(t, 7, report.TotalQuantity)
}

func TestProductionReport_OnlyFinalOperationCounts(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 40},
			{ProductCode: "P1", OperationID: opCasting, Date: day(2024, 1, 5), Quantity: 500},
			{ProductCode: "P2", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 30},
		},
	}
	svc := NewService(repo)

	report, err := svc.GetProductionReport(context.Background(), day(2024, 1, 5), day(2024, 1, 5))
	require.NoError(t, err)

	// Intermediate operations and unknown product codes are excluded.
	assert.Equal(t, 40, report.TotalQuantity)
}

func TestProductionReport_QuantityConservation(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk A", Type: "Disk", LastOperationID: opMachining},
			{ProductCode: "P2", Name: "Drum B", Type: "Kampana", LastOperationID: opCasting},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 2, 1), Quantity: 10},
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 2, 2), Quantity: 20},
			{ProductCode: "P2", OperationID: opCasting, Date: day(2024, 2, 2), Quantity: 30},
		},
	}
	svc := NewService(repo)

	report, err := svc.GetProductionReport(context.Background(), day(2024, 2, 1), day(2024, 2, 3))
	require.NoError(t, err)

	sum := 0
	for _, g := range report.TypeGroups {
		for _, p := range g.Products {
			sum += p.Quantity
		}
	}
	assert.Equal(t, 60, sum)
	assert.Equal(t, 60, report.TotalQuantity)

	total, err := svc.GetTotalProduced(context.Background(), day(2024, 2, 1), day(2024, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 60, total)
}

func TestProductionReport_GroupsSortedDeterministically(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "B2", Name: "Drum", Type: "Kampana", LastOperationID: opMachining},
			{ProductCode: "A1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
			{ProductCode: "A2", Name: "Disk XL", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "B2", OperationID: opMachining, Date: day(2024, 1, 1), Quantity: 1},
			{ProductCode: "A2", OperationID: opMachining, Date: day(2024, 1, 1), Quantity: 2},
			{ProductCode: "A1", OperationID: opMachining, Date: day(2024, 1, 1), Quantity: 3},
		},
	}
	svc := NewService(repo)

	report, err := svc.GetProductionReport(context.Background(), day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)

	require.Len(t, report.TypeGroups, 2)
	assert.Equal(t, "Disk", report.TypeGroups[0].TypeName)
	assert.Equal(t, "Kampana", report.TypeGroups[1].TypeName)
	assert.Equal(t, "A1", report.TypeGroups[0].Products[0].ProductCode)
	assert.Equal(t, "A2", report.TypeGroups[0].Products[1].ProductCode)
}

func TestProductionReport_InvalidRange(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetProductionReport(context.Background(), day(2024, 1, 10), day(2024, 1, 5))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestProductionReport_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{})

	report, err := svc.GetProductionReport(context.Background(), day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, report.TypeGroups)
	assert.Equal(t, 0, report.TotalQuantity)

	totals, err := svc.GetProductionTotalsForDate(context.Background(), day(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, totals.CombinedTotal)
	assert.Equal(t, 0.0, totals.AverageOperatorEfficiency)
	assert.Equal(t, 0.0, totals.AverageMachineEfficiency)
}

func TestProductionTotals_WeightedAverage(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 10, OperatorEfficiency: fptr(0.5)},
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 30, OperatorEfficiency: fptr(0.9)},
		},
	}
	svc := NewService(repo)

	totals, err := svc.GetProductionTotalsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	// (10*0.5 + 30*0.9) / 40 = 0.8
	assert.InDelta(t, 0.8, totals.AverageOperatorEfficiency, 1e-9)
}

func TestProductionTotals_NilEfficienciesExcludedPerMetric(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 10, OperatorEfficiency: fptr(0.6)},
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 90, MachineEfficiency: fptr(0.4)},
		},
	}
	svc := NewService(repo)

	totals, err := svc.GetProductionTotalsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	// Each metric averages only over rows where it was recorded.
	assert.InDelta(t, 0.6, totals.AverageOperatorEfficiency, 1e-9)
	assert.InDelta(t, 0.4, totals.AverageMachineEfficiency, 1e-9)
	assert.Equal(t, 100, totals.DiskTotal)
}

func TestProductionTotals_UnmatchedTypeDropped(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "W1", Name: "Widget", Type: "Widget", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "W1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 50, OperatorEfficiency: fptr(0.7)},
		},
	}
	svc := NewService(repo)

	totals, err := svc.GetProductionTotalsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	// Unmatched types appear in no bucket and not in combinedTotal,
	// but their rows still feed the efficiency averages.
	assert.Equal(t, 0, totals.DiskTotal)
	assert.Equal(t, 0, totals.KampanaTotal)
	assert.Equal(t, 0, totals.PoyraTotal)
	assert.Equal(t, 0, totals.CombinedTotal)
	assert.InDelta(t, 0.7, totals.AverageOperatorEfficiency, 1e-9)
}

func TestClassifyType_Synonyms(t *testing.T) {
	cases := map[string]Category{
		"Disk":        CategoryDisk,
		"FREN DISKI":  CategoryDisk,
		"Kampana":     CategoryKampana,
		"Brake Drum":  CategoryKampana,
		"Poyra":       CategoryPoyra,
		"Wheel Hub":   CategoryPoyra,
		"Widget":      CategoryUnknown,
		"":            CategoryUnknown,
	}
	for input, want := range cases {
		assert.Equal(t, want, ClassifyType(input), "type %q", input)
	}
}

func TestShipmentTotals_PartitionByFlags(t *testing.T) {
	repo := &fakeRepo{
		shipments: []ShipmentRecord{
			{ID: id.New(), Date: day(2024, 1, 5), Disk: iptr(5), Domestic: true, Abroad: true},
			{ID: id.New(), Date: day(2024, 1, 5), Kampana: iptr(3), Domestic: true},
			{ID: id.New(), Date: day(2024, 1, 5), Poyra: iptr(2), Abroad: true},
			// Neither flag set: appears in neither subset.
			{ID: id.New(), Date: day(2024, 1, 5), Disk: iptr(99)},
		},
	}
	svc := NewService(repo)

	totals, err := svc.GetShipmentTotalsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	// The both-flags shipment contributes fully to both subsets.
	assert.Equal(t, 5, totals.Domestic.DiskTotal)
	assert.Equal(t, 5, totals.Abroad.DiskTotal)
	assert.Equal(t, 3, totals.Domestic.KampanaTotal)
	assert.Equal(t, 2, totals.Abroad.PoyraTotal)
	assert.Equal(t, 8, totals.Domestic.CombinedTotal)
	assert.Equal(t, 7, totals.Abroad.CombinedTotal)

	assert.Equal(t, 10, totals.Combined.DiskTotal)
	assert.Equal(t, 15, totals.Combined.CombinedTotal)
}

func TestShipmentsForDate_FiltersToCalendarDay(t *testing.T) {
	repo := &fakeRepo{
		shipments: []ShipmentRecord{
			{ID: id.New(), Date: at(2024, 1, 5, 14, 30), Disk: iptr(1), Domestic: true},
			{ID: id.New(), Date: day(2024, 1, 6), Disk: iptr(2), Domestic: true},
		},
	}
	svc := NewService(repo)

	shipments, err := svc.GetShipmentsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, 1, *shipments[0].Disk)
}

func TestCarryover_ClampsAndDropsZero(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		orders: []OrderInfo{
			{ProductCode: "P1", Carryover: 20},
			{ProductCode: "P1", Carryover: -5},
			{ProductCode: "P1", Carryover: 0},
		},
	}
	svc := NewService(repo)

	result, err := svc.GetCarryoverCountsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "Disk", result[0].ProductType)
	require.Len(t, result[0].Buckets, 15)
	for _, b := range result[0].Buckets {
		if b.CarryoverValue == 15 {
			assert.Equal(t, 1, b.Count, "carryover 20 clamps into bucket 15")
		} else {
			assert.Equal(t, 0, b.Count, "bucket %d", b.CarryoverValue)
		}
	}
}

func TestCarryover_DenseBuckets(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		orders: []OrderInfo{
			{ProductCode: "P1", Carryover: 3},
		},
	}
	svc := NewService(repo)

	result, err := svc.GetCarryoverCountsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	require.Len(t, result, 1)
	require.Len(t, result[0].Buckets, 15)
	zeroes := 0
	for i, b := range result[0].Buckets {
		assert.Equal(t, i+1, b.CarryoverValue)
		if b.Count == 0 {
			zeroes++
		}
	}
	assert.Equal(t, 14, zeroes)
}

func TestCarryover_UnresolvableCodeMapsToUnknown(t *testing.T) {
	repo := &fakeRepo{
		orders: []OrderInfo{
			{ProductCode: "GHOST", Carryover: 2},
		},
	}
	svc := NewService(repo)

	result, err := svc.GetCarryoverCountsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "Unknown", result[0].ProductType)
	assert.Equal(t, 1, result[0].Buckets[1].Count)
}

func TestCarryover_CodeLookupIsCaseInsensitive(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "p1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		orders: []OrderInfo{
			{ProductCode: "p1", Carryover: 1},
		},
	}
	svc := NewService(repo)

	result, err := svc.GetCarryoverCountsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Disk", result[0].ProductType)
}

func TestCarryover_DateParameterDoesNotFilter(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		orders: []OrderInfo{
			{ProductCode: "P1", Carryover: 4},
		},
	}
	svc := NewService(repo)

	// All active orders are included no matter the requested date. This is
	// load-bearing behavior for consumers; do not change it to date-filter.
	a, err := svc.GetCarryoverCountsForDate(context.Background(), day(2020, 6, 1))
	require.NoError(t, err)
	b, err := svc.GetCarryoverCountsForDate(context.Background(), day(2030, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, a, 1)
	assert.Equal(t, 1, a[0].Buckets[3].Count)
}

func TestCarryover_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{})

	result, err := svc.GetCarryoverCountsForDate(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestDailyReport_ComposesAllSections(t *testing.T) {
	repo := &fakeRepo{
		products: []ProductInfo{
			{ProductCode: "P1", Name: "Disk", Type: "Disk", LastOperationID: opMachining},
		},
		rows: []TrackingRow{
			{ProductCode: "P1", OperationID: opMachining, Date: day(2024, 1, 5), Quantity: 10, OperatorEfficiency: fptr(1.0)},
		},
		orders: []OrderInfo{
			{ProductCode: "P1", Carryover: 2},
		},
		shipments: []ShipmentRecord{
			{ID: id.New(), Date: day(2024, 1, 5), Disk: iptr(4), Domestic: true},
		},
	}
	svc := NewService(repo)

	daily, err := svc.GetDailyReport(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 1, 5), daily.Date)
	require.NotNil(t, daily.Production)
	assert.Equal(t, 10, daily.Production.TotalQuantity)
	require.NotNil(t, daily.ProductionTotals)
	assert.Equal(t, 10, daily.ProductionTotals.DiskTotal)
	require.Len(t, daily.Shipments, 1)
	require.NotNil(t, daily.ShipmentTotals)
	assert.Equal(t, 4, daily.ShipmentTotals.Domestic.DiskTotal)
	require.Len(t, daily.CarryoverCounts, 1)
}

func TestDailyReport_EmptyDayHasEmptyCollections(t *testing.T) {
	svc := NewService(&fakeRepo{})

	daily, err := svc.GetDailyReport(context.Background(), day(2024, 1, 5))
	require.NoError(t, err)

	assert.NotNil(t, daily.Shipments)
	assert.Empty(t, daily.Shipments)
	assert.NotNil(t, daily.CarryoverCounts)
	assert.Empty(t, daily.CarryoverCounts)
	assert.NotNil(t, daily.Production)
	assert.NotNil(t, daily.ProductionTotals)
	assert.NotNil(t, daily.ShipmentTotals)
}

func TestDailyReport_FailFast(t *testing.T) {
	repo := &fakeRepo{failWith: errors.New("store unavailable")}
	svc := NewService(repo)

	_, err := svc.GetDailyReport(context.Background(), day(2024, 1, 5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
}
