package shipment

import (
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// Service provides business logic for shipment documents.
// The domestic/abroad exclusivity rule lives in Shipment.Validate, so the
// generic service covers single and bulk writes alike.
type Service struct {
	*domain.Service[*Shipment]
	repo Repository
}

// NewService creates a new Shipment service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewService(domain.ServiceConfig[*Shipment]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "shipment",
	})

	return &Service{
		Service: base,
		repo:    repo,
	}
}
