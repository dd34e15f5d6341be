// Package product provides the Product catalog. Products carry a free-text
// type used by reporting to classify output into disk/drum/hub buckets, and
// reference the final operation of their manufacturing route.
package product

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
)

// Product represents a manufactured item.
// Code is the product code printed on shop-floor forms and is unique.
type Product struct {
	entity.Catalog

	// Description is an optional long description
	Description *string `db:"description" json:"description,omitempty"`

	// Type is a free-text category (e.g. "Disk", "Kampana", "Poyra").
	// Reporting classifies it by case-insensitive substring match.
	Type string `db:"product_type" json:"type"`

	// LastOperationID references the final operation of the route.
	// Only tracking rows recorded at this operation count as finished production.
	LastOperationID id.ID `db:"last_operation_id" json:"lastOperationId"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name, productType string, lastOperationID id.ID) *Product {
	return &Product{
		Catalog:         entity.NewCatalog(code, name),
		Type:            productType,
		LastOperationID: lastOperationID,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.LastOperationID) {
		return apperror.NewValidation("last operation is required").
			WithDetail("field", "lastOperationId")
	}

	return nil
}
