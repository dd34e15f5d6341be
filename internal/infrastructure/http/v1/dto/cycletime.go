package dto

import (
	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain/catalogs/cycletime"
)

// CreateCycleTimeRequest is the request body for creating a cycle time norm.
type CreateCycleTimeRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	OperationID string `json:"operationId" binding:"required"`
	Seconds     int    `json:"seconds" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCycleTimeRequest) ToEntity() (*cycletime.CycleTime, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId").WithDetail("productId", r.ProductID)
	}
	operationID, err := id.Parse(r.OperationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid operationId").WithDetail("operationId", r.OperationID)
	}
	return cycletime.NewCycleTime(productID, operationID, r.Seconds), nil
}

// UpdateCycleTimeRequest is the request body for updating a cycle time norm.
type UpdateCycleTimeRequest struct {
	Seconds int `json:"seconds" binding:"required,min=1"`
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateCycleTimeRequest) ApplyTo(ct *cycletime.CycleTime) {
	ct.Seconds = r.Seconds
	ct.SetVersion(r.Version)
}
