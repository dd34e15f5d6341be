package entity

import (
	"context"
	"time"

	"uretimtrack/internal/core/apperror"
)

// Document is the base type for dated business records: tracking forms,
// packings, orders, shipments.
type Document struct {
	BaseEntity

	// Date is the business date of the record
	Date time.Time `db:"doc_date" json:"date"`
}

// NewDocument creates a new Document with generated ID and the given date.
func NewDocument(date time.Time) Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       date,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
