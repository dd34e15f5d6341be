// Package reports provides the production reporting engine: joining
// tracking rows to products at their final operation, bucketing output
// by product category, shipment totals and the order carryover histogram.
package reports

import (
	"strings"
	"time"

	"uretimtrack/internal/core/id"
)

// --- Read models (rows returned by the Repository) ---

// ProductInfo is the slice of a product the reporting engine needs.
type ProductInfo struct {
	ProductCode     string `db:"code" json:"productCode"`
	Name            string `db:"name" json:"name"`
	Type            string `db:"product_type" json:"type"`
	LastOperationID id.ID  `db:"last_operation_id" json:"lastOperationId"`
}

// TrackingRow is one active tracking form row within a date range.
type TrackingRow struct {
	ProductCode        string    `db:"product_code" json:"productCode"`
	OperationID        id.ID     `db:"operation_id" json:"operationId"`
	Date               time.Time `db:"doc_date" json:"date"`
	Quantity           int       `db:"quantity" json:"quantity"`
	OperatorEfficiency *float64  `db:"operator_efficiency" json:"operatorEfficiency,omitempty"`
	MachineEfficiency  *float64  `db:"machine_efficiency" json:"machineEfficiency,omitempty"`
}

// OrderInfo is the slice of an order the carryover bucketer needs.
type OrderInfo struct {
	ProductCode string `db:"product_code" json:"productCode"`
	Carryover   int    `db:"carryover" json:"carryover"`
}

// ShipmentRecord is one active shipment row.
type ShipmentRecord struct {
	ID       id.ID     `db:"id" json:"id"`
	Date     time.Time `db:"doc_date" json:"date"`
	Disk     *int      `db:"disk_count" json:"disk,omitempty"`
	Kampana  *int      `db:"kampana_count" json:"kampana,omitempty"`
	Poyra    *int      `db:"poyra_count" json:"poyra,omitempty"`
	Abroad   bool      `db:"abroad" json:"abroad"`
	Domestic bool      `db:"domestic" json:"domestic"`
}

// --- Production report ---

// ProductTotal is the per-product quantity sum inside a type group.
type ProductTotal struct {
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// TypeGroup is the per-product-type section of the production report.
type TypeGroup struct {
	TypeName      string         `json:"typeName"`
	Products      []ProductTotal `json:"products"`
	TotalQuantity int            `json:"totalQuantity"`
}

// ProductionReport is the detailed production report for a date range.
type ProductionReport struct {
	StartDate     time.Time   `json:"startDate"`
	EndDate       time.Time   `json:"endDate"`
	TypeGroups    []TypeGroup `json:"typeGroups"`
	TotalQuantity int         `json:"totalQuantity"`
}

// ProductionTotals is the single-day summary with category buckets and
// quantity-weighted efficiency averages.
type ProductionTotals struct {
	DiskTotal                 int     `json:"diskTotal"`
	KampanaTotal              int     `json:"kampanaTotal"`
	PoyraTotal                int     `json:"poyraTotal"`
	CombinedTotal             int     `json:"combinedTotal"`
	AverageOperatorEfficiency float64 `json:"averageOperatorEfficiency"`
	AverageMachineEfficiency  float64 `json:"averageMachineEfficiency"`
}

// --- Shipment report ---

// ShipmentTypeTotals sums shipped counts per category for one subset.
type ShipmentTypeTotals struct {
	DiskTotal     int `json:"diskTotal"`
	KampanaTotal  int `json:"kampanaTotal"`
	PoyraTotal    int `json:"poyraTotal"`
	CombinedTotal int `json:"combinedTotal"`
}

// Add accumulates one shipment record into the totals.
func (t *ShipmentTypeTotals) Add(s ShipmentRecord) {
	disk := intOrZero(s.Disk)
	kampana := intOrZero(s.Kampana)
	poyra := intOrZero(s.Poyra)
	t.DiskTotal += disk
	t.KampanaTotal += kampana
	t.PoyraTotal += poyra
	t.CombinedTotal += disk + kampana + poyra
}

// Plus returns the field-wise sum of two totals.
func (t ShipmentTypeTotals) Plus(o ShipmentTypeTotals) ShipmentTypeTotals {
	return ShipmentTypeTotals{
		DiskTotal:     t.DiskTotal + o.DiskTotal,
		KampanaTotal:  t.KampanaTotal + o.KampanaTotal,
		PoyraTotal:    t.PoyraTotal + o.PoyraTotal,
		CombinedTotal: t.CombinedTotal + o.CombinedTotal,
	}
}

// ShipmentTotals partitions shipped counts by destination. A record with
// both flags set contributes to both subsets; Combined is their field-wise sum.
type ShipmentTotals struct {
	Domestic ShipmentTypeTotals `json:"domestic"`
	Abroad   ShipmentTypeTotals `json:"abroad"`
	Combined ShipmentTypeTotals `json:"combined"`
}

// --- Carryover report ---

// CarryoverBucketMax is the clamp ceiling: bucket 15 means "15 or more".
const CarryoverBucketMax = 15

// CarryoverCount is one histogram bucket.
type CarryoverCount struct {
	CarryoverValue int `json:"carryoverValue"`
	Count          int `json:"count"`
}

// CarryoverByType is the dense 1..15 histogram for one product type.
type CarryoverByType struct {
	ProductType string           `json:"productType"`
	Buckets     []CarryoverCount `json:"buckets"`
}

// --- Daily report ---

// DailyReport composes all aggregations for a single day.
type DailyReport struct {
	Date             time.Time         `json:"date"`
	Production       *ProductionReport `json:"production"`
	ProductionTotals *ProductionTotals `json:"productionTotals"`
	Shipments        []ShipmentRecord  `json:"shipments"`
	ShipmentTotals   *ShipmentTotals   `json:"shipmentTotals"`
	CarryoverCounts  []CarryoverByType `json:"carryoverCounts"`
}

// --- Product type classification ---

// Category is a classified product type bucket.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryDisk
	CategoryKampana
	CategoryPoyra
)

// ClassifyType maps a free-text product type to a category by
// case-insensitive substring match. Unmatched types return CategoryUnknown
// and are dropped from the named totals.
func ClassifyType(productType string) Category {
	key := strings.ToLower(productType)
	switch {
	case strings.Contains(key, "disk"):
		return CategoryDisk
	case strings.Contains(key, "kampana"), strings.Contains(key, "drum"):
		return CategoryKampana
	case strings.Contains(key, "poyra"), strings.Contains(key, "hub"):
		return CategoryPoyra
	default:
		return CategoryUnknown
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
