package reports

import (
	"context"
	"time"
)

// Repository is the read-only entity store view the reporting engine
// aggregates over. Implementations must return active rows only.
type Repository interface {
	// ActiveProducts returns all active products.
	ActiveProducts(ctx context.Context) ([]ProductInfo, error)

	// ProductTypesByCode resolves product codes to their type for active
	// products. Missing codes are simply absent from the result.
	ProductTypesByCode(ctx context.Context, codes []string) (map[string]string, error)

	// ActiveTrackingRows returns active tracking rows with doc_date in [from, to].
	ActiveTrackingRows(ctx context.Context, from, to time.Time) ([]TrackingRow, error)

	// ActiveOrders returns all active orders.
	ActiveOrders(ctx context.Context) ([]OrderInfo, error)

	// ActiveShipments returns active shipments with doc_date in [from, to].
	ActiveShipments(ctx context.Context, from, to time.Time) ([]ShipmentRecord, error)
}
