package document_repo

import (
	"uretimtrack/internal/domain/documents/shipment"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const shipmentTable = "doc_shipments"

// ShipmentRepo is the PostgreSQL repository for shipment records.
type ShipmentRepo struct {
	*BaseDocumentRepo[*shipment.Shipment]
}

// NewShipmentRepo creates a new shipment repository.
func NewShipmentRepo(txm *postgres.TxManager) *ShipmentRepo {
	cols := postgres.ExtractDBColumns[shipment.Shipment]()
	return &ShipmentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			shipmentTable,
			cols,
			nil,
			func() *shipment.Shipment { return &shipment.Shipment{} },
		),
	}
}

var _ shipment.Repository = (*ShipmentRepo)(nil)
