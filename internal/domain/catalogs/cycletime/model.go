// Package cycletime provides the CycleTime catalog: the standard number of
// seconds one unit of a product spends at one operation.
package cycletime

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
)

// CycleTime is the standard time for a (product, operation) pair.
type CycleTime struct {
	entity.BaseEntity

	// ProductID references the product
	ProductID id.ID `db:"product_id" json:"productId"`

	// OperationID references the operation
	OperationID id.ID `db:"operation_id" json:"operationId"`

	// Seconds is the standard time per unit
	Seconds int `db:"seconds" json:"seconds"`
}

// NewCycleTime creates a new CycleTime.
func NewCycleTime(productID, operationID id.ID, seconds int) *CycleTime {
	return &CycleTime{
		BaseEntity:  entity.NewBaseEntity(),
		ProductID:   productID,
		OperationID: operationID,
		Seconds:     seconds,
	}
}

// Validate implements entity.Validatable interface.
func (c *CycleTime) Validate(ctx context.Context) error {
	if id.IsNil(c.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if id.IsNil(c.OperationID) {
		return apperror.NewValidation("operation is required").
			WithDetail("field", "operationId")
	}
	if c.Seconds <= 0 {
		return apperror.NewValidation("seconds must be positive").
			WithDetail("field", "seconds")
	}
	return nil
}
