// Package report_repo provides the read-only PostgreSQL view the
// reporting engine aggregates over. All queries filter to active rows.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uretimtrack/internal/domain/reports"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

// ReportRepo reads report source data from PostgreSQL.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ActiveProducts returns all active products.
func (r *ReportRepo) ActiveProducts(ctx context.Context) ([]reports.ProductInfo, error) {
	q := r.builder().
		Select("code", "name", "product_type", "last_operation_id").
		From("cat_products").
		Where(squirrel.Eq{"is_active": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	var rows []reports.ProductInfo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return rows, nil
}

// ProductTypesByCode resolves product codes to their type. Lookup is
// case-insensitive; keys in the result are lowercased codes.
func (r *ReportRepo) ProductTypesByCode(ctx context.Context, codes []string) (map[string]string, error) {
	result := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	lowered := make([]string, 0, len(codes))
	for _, c := range codes {
		lowered = append(lowered, strings.ToLower(c))
	}

	q := r.builder().
		Select("LOWER(code) AS code", "product_type").
		From("cat_products").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"LOWER(code)": lowered})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product types query: %w", err)
	}

	var rows []struct {
		Code string `db:"code"`
		Type string `db:"product_type"`
	}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select product types: %w", err)
	}

	for _, row := range rows {
		result[row.Code] = row.Type
	}
	return result, nil
}

// ActiveTrackingRows returns active tracking rows with doc_date in [from, to].
func (r *ReportRepo) ActiveTrackingRows(ctx context.Context, from, to time.Time) ([]reports.TrackingRow, error) {
	q := r.builder().
		Select("product_code", "operation_id", "doc_date", "quantity",
			"operator_efficiency", "machine_efficiency").
		From("doc_tracking_forms").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.GtOrEq{"doc_date": from}).
		Where(squirrel.LtOrEq{"doc_date": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tracking query: %w", err)
	}

	var rows []reports.TrackingRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select tracking rows: %w", err)
	}
	return rows, nil
}

// ActiveOrders returns all active orders.
func (r *ReportRepo) ActiveOrders(ctx context.Context) ([]reports.OrderInfo, error) {
	q := r.builder().
		Select("product_code", "carryover").
		From("doc_orders").
		Where(squirrel.Eq{"is_active": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	var rows []reports.OrderInfo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	return rows, nil
}

// ActiveShipments returns active shipments with doc_date in [from, to].
func (r *ReportRepo) ActiveShipments(ctx context.Context, from, to time.Time) ([]reports.ShipmentRecord, error) {
	q := r.builder().
		Select("id", "doc_date", "disk_count", "kampana_count", "poyra_count",
			"abroad", "domestic").
		From("doc_shipments").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.GtOrEq{"doc_date": from}).
		Where(squirrel.LtOrEq{"doc_date": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shipments query: %w", err)
	}

	var rows []reports.ShipmentRecord
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select shipments: %w", err)
	}
	return rows, nil
}
