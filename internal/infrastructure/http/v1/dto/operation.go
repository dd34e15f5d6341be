package dto

import (
	"uretimtrack/internal/domain/catalogs/operation"
)

// CreateOperationRequest is the request body for creating an operation.
type CreateOperationRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateOperationRequest) ToEntity() *operation.Operation {
	return operation.NewOperation(r.Code, r.Name)
}

// UpdateOperationRequest is the request body for updating an operation.
type UpdateOperationRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateOperationRequest) ApplyTo(op *operation.Operation) {
	op.Code = r.Code
	op.Name = r.Name
	op.SetVersion(r.Version)
}
