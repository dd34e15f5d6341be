// Package shipment provides the shipment document: per-day shipped counts
// of disks, drums and hubs, flagged as domestic or export.
package shipment

import (
	"context"
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
)

// Shipment is a single shipment record.
// Exactly one of Domestic/Abroad should be set; reporting partitions
// totals by each flag independently.
type Shipment struct {
	entity.Document

	// Shipped counts per category. Nil means not shipped.
	Disk    *int `db:"disk_count" json:"disk,omitempty"`
	Kampana *int `db:"kampana_count" json:"kampana,omitempty"`
	Poyra   *int `db:"poyra_count" json:"poyra,omitempty"`

	// Destination flags
	Abroad   bool `db:"abroad" json:"abroad"`
	Domestic bool `db:"domestic" json:"domestic"`
}

// NewShipment creates a new Shipment for the given date.
func NewShipment(date time.Time) *Shipment {
	return &Shipment{
		Document: entity.NewDocument(date),
	}
}

// Validate implements entity.Validatable interface.
func (s *Shipment) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if s.Abroad && s.Domestic {
		return apperror.NewValidation("shipment cannot be both domestic and abroad").
			WithDetail("field", "domestic")
	}

	for field, v := range map[string]*int{
		"disk":    s.Disk,
		"kampana": s.Kampana,
		"poyra":   s.Poyra,
	} {
		if v != nil && *v < 0 {
			return apperror.NewValidation("shipped count cannot be negative").
				WithDetail("field", field)
		}
	}

	return nil
}

// Total returns the combined shipped count, treating nil as zero.
func (s *Shipment) Total() int {
	total := 0
	for _, v := range []*int{s.Disk, s.Kampana, s.Poyra} {
		if v != nil {
			total += *v
		}
	}
	return total
}
