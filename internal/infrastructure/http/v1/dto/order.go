package dto

import (
	"time"

	"uretimtrack/internal/domain/documents/order"
)

// CreateOrderRequest is the request body for creating a production order.
// DocumentNo may be left empty, in which case a number is generated.
type CreateOrderRequest struct {
	Date              time.Time `json:"date" binding:"required"`
	DocumentNo        string    `json:"documentNo"`
	Customer          string    `json:"customer" binding:"required"`
	ProductCode       string    `json:"productCode" binding:"required"`
	Variants          string    `json:"variants"`
	OrderCount        int       `json:"orderCount"`
	Carryover         int       `json:"carryover"`
	CompletedQuantity int       `json:"completedQuantity"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateOrderRequest) ToEntity() *order.Order {
	o := order.NewOrder(r.Date, r.DocumentNo, r.Customer, r.ProductCode, r.OrderCount)
	o.Variants = r.Variants
	o.Carryover = r.Carryover
	o.CompletedQuantity = r.CompletedQuantity
	return o
}

// UpdateOrderRequest is the request body for updating a production order.
type UpdateOrderRequest struct {
	CreateOrderRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateOrderRequest) ApplyTo(o *order.Order) {
	o.Date = r.Date
	o.DocumentNo = r.DocumentNo
	o.Customer = r.Customer
	o.ProductCode = r.ProductCode
	o.Variants = r.Variants
	o.OrderCount = r.OrderCount
	o.Carryover = r.Carryover
	o.CompletedQuantity = r.CompletedQuantity
	o.SetVersion(r.Version)
}
