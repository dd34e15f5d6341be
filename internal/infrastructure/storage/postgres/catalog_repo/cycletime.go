package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain/catalogs/cycletime"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const cycleTimeTable = "cat_cycle_times"

// CycleTimeRepo is the PostgreSQL repository for cycle time norms.
type CycleTimeRepo struct {
	*BaseCatalogRepo[*cycletime.CycleTime]
}

// NewCycleTimeRepo creates a new cycle time repository.
func NewCycleTimeRepo(txm *postgres.TxManager) *CycleTimeRepo {
	cols := postgres.ExtractDBColumns[cycletime.CycleTime]()
	base := NewBaseCatalogRepo(
		txm,
		cycleTimeTable,
		cols,
		func() *cycletime.CycleTime { return &cycletime.CycleTime{} },
	)
	// The table has no code or name, so text search is off and listing
	// falls back to insertion order.
	base.searchCols = nil
	base.orderBy = "created_at ASC"
	return &CycleTimeRepo{BaseCatalogRepo: base}
}

// FindByPair retrieves the active cycle time for a (product, operation) pair.
func (r *CycleTimeRepo) FindByPair(ctx context.Context, productID, operationID id.ID) (*cycletime.CycleTime, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"operation_id": operationID}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)

	return r.FindOne(ctx, q)
}

var _ cycletime.Repository = (*CycleTimeRepo)(nil)
