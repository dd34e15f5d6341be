package dto

import (
	"time"

	"uretimtrack/internal/domain/documents/shipment"
)

// CreateShipmentRequest is the request body for creating a shipment record.
type CreateShipmentRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Disk     *int      `json:"disk"`
	Kampana  *int      `json:"kampana"`
	Poyra    *int      `json:"poyra"`
	Abroad   bool      `json:"abroad"`
	Domestic bool      `json:"domestic"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateShipmentRequest) ToEntity() *shipment.Shipment {
	s := shipment.NewShipment(r.Date)
	s.Disk = r.Disk
	s.Kampana = r.Kampana
	s.Poyra = r.Poyra
	s.Abroad = r.Abroad
	s.Domestic = r.Domestic
	return s
}

// UpdateShipmentRequest is the request body for updating a shipment record.
type UpdateShipmentRequest struct {
	CreateShipmentRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateShipmentRequest) ApplyTo(s *shipment.Shipment) {
	s.Date = r.Date
	s.Disk = r.Disk
	s.Kampana = r.Kampana
	s.Poyra = r.Poyra
	s.Abroad = r.Abroad
	s.Domestic = r.Domestic
	s.SetVersion(r.Version)
}
