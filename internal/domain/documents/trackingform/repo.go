package trackingform

import (
	"uretimtrack/internal/domain"
)

// Repository defines the interface for TrackingForm persistence.
type Repository interface {
	domain.DocumentRepository[*TrackingForm]
}
