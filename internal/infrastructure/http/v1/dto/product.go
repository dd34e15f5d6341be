package dto

import (
	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	Type            string  `json:"type" binding:"required"`
	LastOperationID string  `json:"lastOperationId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	opID, err := id.Parse(r.LastOperationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid lastOperationId").
			WithDetail("lastOperationId", r.LastOperationID)
	}
	p := product.NewProduct(r.Code, r.Name, r.Type, opID)
	p.Description = r.Description
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	Type            string  `json:"type" binding:"required"`
	LastOperationID string  `json:"lastOperationId" binding:"required"`
	Version         int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	opID, err := id.Parse(r.LastOperationID)
	if err != nil {
		return apperror.NewValidation("invalid lastOperationId").
			WithDetail("lastOperationId", r.LastOperationID)
	}
	p.Code = r.Code
	p.Name = r.Name
	p.Description = r.Description
	p.Type = r.Type
	p.LastOperationID = opID
	p.SetVersion(r.Version)
	return nil
}
