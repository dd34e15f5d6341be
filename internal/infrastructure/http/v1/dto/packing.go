package dto

import (
	"time"

	"uretimtrack/internal/domain/documents/packing"
)

// CreatePackingRequest is the request body for creating a packing record.
type CreatePackingRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	Shift        *string   `json:"shift"`
	Supervisor   *string   `json:"supervisor"`
	ProductCode  string    `json:"productCode" binding:"required"`
	Quantity     int       `json:"quantity"`
	ExplodedFrom *string   `json:"explodedFrom"`
	ExplodingTo  *string   `json:"explodingTo"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePackingRequest) ToEntity() *packing.Packing {
	p := packing.NewPacking(r.Date, r.ProductCode, r.Quantity)
	p.Shift = r.Shift
	p.Supervisor = r.Supervisor
	p.ExplodedFrom = r.ExplodedFrom
	p.ExplodingTo = r.ExplodingTo
	return p
}

// UpdatePackingRequest is the request body for updating a packing record.
type UpdatePackingRequest struct {
	CreatePackingRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdatePackingRequest) ApplyTo(p *packing.Packing) {
	p.Date = r.Date
	p.Shift = r.Shift
	p.Supervisor = r.Supervisor
	p.ProductCode = r.ProductCode
	p.Quantity = r.Quantity
	p.ExplodedFrom = r.ExplodedFrom
	p.ExplodingTo = r.ExplodingTo
	p.SetVersion(r.Version)
}
