package operation

import (
	"uretimtrack/internal/domain"
)

// Repository defines the interface for Operation persistence.
type Repository interface {
	domain.CatalogRepository[*Operation]
}
