package shipment

import (
	"uretimtrack/internal/domain"
)

// Repository defines the interface for Shipment persistence.
type Repository interface {
	domain.DocumentRepository[*Shipment]
}
