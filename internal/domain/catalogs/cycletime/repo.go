package cycletime

import (
	"context"

	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain"
)

// Repository defines the interface for CycleTime persistence.
type Repository interface {
	domain.EntityRepository[*CycleTime]

	// FindByPair retrieves the cycle time for a (product, operation) pair.
	FindByPair(ctx context.Context, productID, operationID id.ID) (*CycleTime, error)
}
