package catalog_repo

import (
	"uretimtrack/internal/domain/catalogs/operation"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const operationTable = "cat_operations"

// OperationRepo is the PostgreSQL repository for operations.
type OperationRepo struct {
	*BaseCatalogRepo[*operation.Operation]
}

// NewOperationRepo creates a new operation repository.
func NewOperationRepo(txm *postgres.TxManager) *OperationRepo {
	cols := postgres.ExtractDBColumns[operation.Operation]()
	return &OperationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			operationTable,
			cols,
			func() *operation.Operation { return &operation.Operation{} },
		),
	}
}

var _ operation.Repository = (*OperationRepo)(nil)
