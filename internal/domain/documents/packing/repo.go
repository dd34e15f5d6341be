package packing

import (
	"uretimtrack/internal/domain"
)

// Repository defines the interface for Packing persistence.
type Repository interface {
	domain.DocumentRepository[*Packing]
}
