package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/pkg/logger"
)

var tracer = otel.Tracer("uretimtrack.reports")

// Service is the reporting engine. It is stateless between requests;
// all persisted state lives behind Repository.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// dayStart truncates t to its calendar day.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// normalizeRange expands [start, end] to full calendar days: from the
// start of startDate through the last instant of endDate.
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	s := dayStart(start)
	e := dayStart(end).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s, e
}

// joinedRow is one tracking row matched to its product's final operation.
type joinedRow struct {
	productType string
	productCode string
	productName string
	quantity    int
	operatorEff *float64
	machineEff  *float64
}

// joinFinishedProduction matches active tracking rows in [from, to] to
// active products on (productCode, operationId) == (code, lastOperationId).
// Only these rows count as finished production.
func (s *Service) joinFinishedProduction(ctx context.Context, from, to time.Time) ([]joinedRow, error) {
	products, err := s.repo.ActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	rows, err := s.repo.ActiveTrackingRows(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load tracking rows: %w", err)
	}

	type joinKey struct {
		code string
		op   string
	}
	index := make(map[joinKey]ProductInfo, len(products))
	for _, p := range products {
		index[joinKey{p.ProductCode, p.LastOperationID.String()}] = p
	}

	joined := make([]joinedRow, 0, len(rows))
	for _, r := range rows {
		p, ok := index[joinKey{r.ProductCode, r.OperationID.String()}]
		if !ok {
			continue
		}
		joined = append(joined, joinedRow{
			productType: p.Type,
			productCode: p.ProductCode,
			productName: p.Name,
			quantity:    r.Quantity,
			operatorEff: r.OperatorEfficiency,
			machineEff:  r.MachineEfficiency,
		})
	}

	logger.Debug(ctx, "finished production join",
		"products", len(products),
		"tracking_rows", len(rows),
		"joined", len(joined),
	)

	return joined, nil
}

// GetProductionReport builds the detailed per-type, per-product report
// for the inclusive date range [startDate, endDate].
func (s *Service) GetProductionReport(ctx context.Context, startDate, endDate time.Time) (*ProductionReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetProductionReport",
		trace.WithAttributes(
			attribute.String("report.start", startDate.Format("2006-01-02")),
			attribute.String("report.end", endDate.Format("2006-01-02")),
		))
	defer span.End()

	if dayStart(endDate).Before(dayStart(startDate)) {
		return nil, apperror.NewValidation("start date cannot be after end date").
			WithDetail("startDate", startDate.Format("2006-01-02")).
			WithDetail("endDate", endDate.Format("2006-01-02"))
	}

	from, to := normalizeRange(startDate, endDate)
	joined, err := s.joinFinishedProduction(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("production report %s..%s: %w",
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), err)
	}

	// type -> product code -> accumulated total
	byType := make(map[string]map[string]*ProductTotal)
	for _, r := range joined {
		products, ok := byType[r.productType]
		if !ok {
			products = make(map[string]*ProductTotal)
			byType[r.productType] = products
		}
		pt, ok := products[r.productCode]
		if !ok {
			pt = &ProductTotal{ProductCode: r.productCode, ProductName: r.productName}
			products[r.productCode] = pt
		}
		pt.Quantity += r.quantity
	}

	report := &ProductionReport{
		StartDate:  startDate,
		EndDate:    endDate,
		TypeGroups: make([]TypeGroup, 0, len(byType)),
	}
	for typeName, products := range byType {
		group := TypeGroup{
			TypeName: typeName,
			Products: make([]ProductTotal, 0, len(products)),
		}
		for _, pt := range products {
			group.Products = append(group.Products, *pt)
			group.TotalQuantity += pt.Quantity
		}
		sort.Slice(group.Products, func(i, j int) bool {
			return group.Products[i].ProductCode < group.Products[j].ProductCode
		})
		report.TypeGroups = append(report.TypeGroups, group)
		report.TotalQuantity += group.TotalQuantity
	}
	sort.Slice(report.TypeGroups, func(i, j int) bool {
		return report.TypeGroups[i].TypeName < report.TypeGroups[j].TypeName
	})

	return report, nil
}

// GetProductionTotalsForDate classifies one day's finished production
// into disk/kampana/poyra buckets and computes quantity-weighted
// efficiency averages.
//
// Unmatched product types are dropped from the named totals (and from
// combinedTotal), but still contribute to the efficiency averages.
func (s *Service) GetProductionTotalsForDate(ctx context.Context, date time.Time) (*ProductionTotals, error) {
	ctx, span := tracer.Start(ctx, "reports.GetProductionTotalsForDate",
		trace.WithAttributes(attribute.String("report.date", date.Format("2006-01-02"))))
	defer span.End()

	from, to := normalizeRange(date, date)
	joined, err := s.joinFinishedProduction(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("production totals %s: %w", date.Format("2006-01-02"), err)
	}

	// Per-type accumulation: quantity plus weighted efficiency sums.
	// Rows with a nil efficiency are excluded from that average's
	// numerator and denominator, independently per metric.
	type typeAcc struct {
		quantity int
		opNum    float64
		opDen    float64
		mcNum    float64
		mcDen    float64
	}
	byType := make(map[string]*typeAcc)
	for _, r := range joined {
		acc, ok := byType[r.productType]
		if !ok {
			acc = &typeAcc{}
			byType[r.productType] = acc
		}
		acc.quantity += r.quantity
		if r.operatorEff != nil {
			acc.opNum += *r.operatorEff * float64(r.quantity)
			acc.opDen += float64(r.quantity)
		}
		if r.machineEff != nil {
			acc.mcNum += *r.machineEff * float64(r.quantity)
			acc.mcDen += float64(r.quantity)
		}
	}

	totals := &ProductionTotals{}
	var opSum, opWeight, mcSum, mcWeight float64

	for typeName, acc := range byType {
		switch ClassifyType(typeName) {
		case CategoryDisk:
			totals.DiskTotal += acc.quantity
		case CategoryKampana:
			totals.KampanaTotal += acc.quantity
		case CategoryPoyra:
			totals.PoyraTotal += acc.quantity
		default:
			logger.Debug(ctx, "unknown product type in production totals", "type", typeName)
		}

		// Grand averages are weighted by each group's total quantity.
		if acc.opDen > 0 {
			opSum += (acc.opNum / acc.opDen) * float64(acc.quantity)
			opWeight += float64(acc.quantity)
		}
		if acc.mcDen > 0 {
			mcSum += (acc.mcNum / acc.mcDen) * float64(acc.quantity)
			mcWeight += float64(acc.quantity)
		}
	}

	totals.CombinedTotal = totals.DiskTotal + totals.KampanaTotal + totals.PoyraTotal
	if opWeight > 0 {
		totals.AverageOperatorEfficiency = opSum / opWeight
	}
	if mcWeight > 0 {
		totals.AverageMachineEfficiency = mcSum / mcWeight
	}

	logger.Debug(ctx, "production totals",
		"date", date.Format("2006-01-02"),
		"disk", totals.DiskTotal,
		"kampana", totals.KampanaTotal,
		"poyra", totals.PoyraTotal,
		"combined", totals.CombinedTotal,
	)

	return totals, nil
}

// GetTotalProduced sums finished production quantity over the range.
func (s *Service) GetTotalProduced(ctx context.Context, startDate, endDate time.Time) (int, error) {
	from, to := normalizeRange(startDate, endDate)
	joined, err := s.joinFinishedProduction(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("total produced %s..%s: %w",
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), err)
	}

	total := 0
	for _, r := range joined {
		total += r.quantity
	}
	return total, nil
}

// GetShipmentsForDate returns active shipments for the given calendar day.
func (s *Service) GetShipmentsForDate(ctx context.Context, date time.Time) ([]ShipmentRecord, error) {
	ctx, span := tracer.Start(ctx, "reports.GetShipmentsForDate",
		trace.WithAttributes(attribute.String("report.date", date.Format("2006-01-02"))))
	defer span.End()

	from, to := normalizeRange(date, date)
	shipments, err := s.repo.ActiveShipments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("shipments %s: %w", date.Format("2006-01-02"), err)
	}
	if shipments == nil {
		shipments = []ShipmentRecord{}
	}
	return shipments, nil
}

// GetShipmentTotalsForDate partitions one day's shipments into domestic
// and abroad subsets and sums counts per category. A shipment with both
// flags set contributes to both subsets; one with neither appears in neither.
func (s *Service) GetShipmentTotalsForDate(ctx context.Context, date time.Time) (*ShipmentTotals, error) {
	ctx, span := tracer.Start(ctx, "reports.GetShipmentTotalsForDate",
		trace.WithAttributes(attribute.String("report.date", date.Format("2006-01-02"))))
	defer span.End()

	from, to := normalizeRange(date, date)
	shipments, err := s.repo.ActiveShipments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("shipment totals %s: %w", date.Format("2006-01-02"), err)
	}

	totals := &ShipmentTotals{}
	for _, sh := range shipments {
		if sh.Domestic {
			totals.Domestic.Add(sh)
		}
		if sh.Abroad {
			totals.Abroad.Add(sh)
		}
	}
	totals.Combined = totals.Domestic.Plus(totals.Abroad)

	return totals, nil
}

// GetCarryoverCountsForDate buckets active orders' carryover values into
// a dense 1..15 histogram per product type.
//
// The date parameter is accepted for interface compatibility but does not
// filter: carryover is a snapshot over all active orders. Callers depend
// on this, so the parameter stays unused.
func (s *Service) GetCarryoverCountsForDate(ctx context.Context, date time.Time) ([]CarryoverByType, error) {
	ctx, span := tracer.Start(ctx, "reports.GetCarryoverCountsForDate")
	defer span.End()

	orders, err := s.repo.ActiveOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("carryover counts: %w", err)
	}
	if len(orders) == 0 {
		return []CarryoverByType{}, nil
	}

	seen := make(map[string]struct{})
	codes := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.ProductCode]; ok {
			continue
		}
		seen[o.ProductCode] = struct{}{}
		codes = append(codes, o.ProductCode)
	}

	types, err := s.repo.ProductTypesByCode(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("carryover counts: resolve product types: %w", err)
	}
	// Case-insensitive code lookup
	typeByCode := make(map[string]string, len(types))
	for code, t := range types {
		typeByCode[strings.ToLower(code)] = t
	}

	// type -> clamped carry -> count
	counts := make(map[string]map[int]int)
	for _, o := range orders {
		carry := o.Carryover
		if carry < 0 {
			carry = 0
		}
		if carry == 0 {
			continue
		}
		if carry > CarryoverBucketMax {
			carry = CarryoverBucketMax
		}

		productType, ok := typeByCode[strings.ToLower(o.ProductCode)]
		if !ok {
			logger.Debug(ctx, "order product code not resolvable for carryover", "product_code", o.ProductCode)
			productType = "Unknown"
		}

		buckets, ok := counts[productType]
		if !ok {
			buckets = make(map[int]int)
			counts[productType] = buckets
		}
		buckets[carry]++
	}

	result := make([]CarryoverByType, 0, len(counts))
	for productType, buckets := range counts {
		byType := CarryoverByType{
			ProductType: productType,
			Buckets:     make([]CarryoverCount, 0, CarryoverBucketMax),
		}
		for b := 1; b <= CarryoverBucketMax; b++ {
			byType.Buckets = append(byType.Buckets, CarryoverCount{
				CarryoverValue: b,
				Count:          buckets[b],
			})
		}
		result = append(result, byType)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductType < result[j].ProductType
	})

	return result, nil
}

// GetDailyReport composes all aggregations for a single day. Sub-reports
// run sequentially and any failure fails the whole report.
func (s *Service) GetDailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetDailyReport",
		trace.WithAttributes(attribute.String("report.date", date.Format("2006-01-02"))))
	defer span.End()

	day := dayStart(date)

	production, err := s.GetProductionReport(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	productionTotals, err := s.GetProductionTotalsForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	shipments, err := s.GetShipmentsForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	shipmentTotals, err := s.GetShipmentTotalsForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	carryover, err := s.GetCarryoverCountsForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}

	return &DailyReport{
		Date:             day,
		Production:       production,
		ProductionTotals: productionTotals,
		Shipments:        shipments,
		ShipmentTotals:   shipmentTotals,
		CarryoverCounts:  carryover,
	}, nil
}
