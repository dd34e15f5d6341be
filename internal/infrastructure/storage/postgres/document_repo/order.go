package document_repo

import (
	"uretimtrack/internal/domain/documents/order"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const orderTable = "doc_orders"

// OrderRepo is the PostgreSQL repository for production orders.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	cols := postgres.ExtractDBColumns[order.Order]()
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			orderTable,
			cols,
			[]string{"document_no", "customer", "product_code"},
			func() *order.Order { return &order.Order{} },
		),
	}
}

var _ order.Repository = (*OrderRepo)(nil)
