package document_repo

import (
	"uretimtrack/internal/domain/documents/packing"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const packingTable = "doc_packings"

// PackingRepo is the PostgreSQL repository for packing records.
type PackingRepo struct {
	*BaseDocumentRepo[*packing.Packing]
}

// NewPackingRepo creates a new packing repository.
func NewPackingRepo(txm *postgres.TxManager) *PackingRepo {
	cols := postgres.ExtractDBColumns[packing.Packing]()
	return &PackingRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			packingTable,
			cols,
			[]string{"product_code"},
			func() *packing.Packing { return &packing.Packing{} },
		),
	}
}

var _ packing.Repository = (*PackingRepo)(nil)
