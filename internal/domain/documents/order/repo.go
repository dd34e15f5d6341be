package order

import (
	"uretimtrack/internal/domain"
)

// Repository defines the interface for Order persistence.
type Repository interface {
	domain.DocumentRepository[*Order]
}
