// Package packing provides the packing document: quantities packed per
// shift, optionally tracking repack moves between pallets.
package packing

import (
	"context"
	"strings"
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
)

// Packing is a single packing record.
type Packing struct {
	entity.Document

	Shift      *string `db:"shift" json:"shift,omitempty"`
	Supervisor *string `db:"supervisor" json:"supervisor,omitempty"`

	// ProductCode references the product by code
	ProductCode string `db:"product_code" json:"productCode"`

	// Quantity is the number of units packed
	Quantity int `db:"quantity" json:"quantity"`

	// ExplodedFrom/ExplodingTo track repack moves between pallets
	ExplodedFrom *string `db:"exploded_from" json:"explodedFrom,omitempty"`
	ExplodingTo  *string `db:"exploding_to" json:"explodingTo,omitempty"`
}

// NewPacking creates a new Packing with required fields.
func NewPacking(date time.Time, productCode string, quantity int) *Packing {
	return &Packing{
		Document:    entity.NewDocument(date),
		ProductCode: productCode,
		Quantity:    quantity,
	}
}

// Validate implements entity.Validatable interface.
func (p *Packing) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(p.ProductCode) == "" {
		return apperror.NewValidation("product code is required").
			WithDetail("field", "productCode")
	}
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	return nil
}
