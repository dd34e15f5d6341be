// Package document_repo provides PostgreSQL implementations for document
// repositories. Documents share the catalog CRUD machinery but add
// date-range filtering on doc_date and list newest-first by default.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"uretimtrack/internal/domain"
	"uretimtrack/internal/infrastructure/storage/postgres"
	"uretimtrack/internal/infrastructure/storage/postgres/catalog_repo"
)

// BaseDocumentRepo provides common CRUD operations for document entities.
type BaseDocumentRepo[T any] struct {
	*catalog_repo.BaseCatalogRepo[T]
	txm        *postgres.TxManager
	tableName  string
	selectCols []string
	searchCols []string
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	selectCols []string,
	searchCols []string,
	newFn func() T,
) *BaseDocumentRepo[T] {
	base := catalog_repo.NewBaseCatalogRepo(txm, tableName, selectCols, newFn)
	return &BaseDocumentRepo[T]{
		BaseCatalogRepo: base,
		txm:             txm,
		tableName:       tableName,
		selectCols:      selectCols,
		searchCols:      searchCols,
	}
}

// List retrieves documents with filtering and pagination. Unlike
// catalogs, documents honor DateFrom/DateTo and sort newest-first.
func (r *BaseDocumentRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := catalog_repo.ApplyStatus(
		r.Builder().Select(r.selectCols...).From(r.tableName),
		filter.Status,
	)

	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"doc_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"doc_date": *filter.DateTo})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := catalog_repo.ParseOrderBy(filter.OrderBy, r.selectCols, "doc_date DESC")
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	if result.Items == nil {
		result.Items = []T{}
	}

	return result, nil
}
