// Package order provides the customer order document. Orders carry a
// carryover counter: the number of periods an order has remained
// unfinished, which reporting buckets into a histogram.
package order

import (
	"context"
	"strings"
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
)

// Order is a customer order line.
type Order struct {
	entity.Document

	// DocumentNo is the customer's order document number
	DocumentNo string `db:"document_no" json:"documentNo"`

	// Customer is the customer name
	Customer string `db:"customer" json:"customer"`

	// ProductCode references the product by code
	ProductCode string `db:"product_code" json:"productCode"`

	// Variants is free-text variant info
	Variants string `db:"variants" json:"variants"`

	// OrderCount is the ordered quantity
	OrderCount int `db:"order_count" json:"orderCount"`

	// Carryover counts how many periods the order has been carried over.
	// Values can be negative in source data; reporting clamps them.
	Carryover int `db:"carryover" json:"carryover"`

	// CompletedQuantity is the quantity already produced
	CompletedQuantity int `db:"completed_quantity" json:"completedQuantity"`
}

// NewOrder creates a new Order with required fields.
func NewOrder(date time.Time, documentNo, customer, productCode string, orderCount int) *Order {
	return &Order{
		Document:    entity.NewDocument(date),
		DocumentNo:  documentNo,
		Customer:    customer,
		ProductCode: productCode,
		OrderCount:  orderCount,
	}
}

// Validate implements entity.Validatable interface.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(o.DocumentNo) == "" {
		return apperror.NewValidation("document number is required").
			WithDetail("field", "documentNo")
	}
	if strings.TrimSpace(o.ProductCode) == "" {
		return apperror.NewValidation("product code is required").
			WithDetail("field", "productCode")
	}
	if o.OrderCount < 0 {
		return apperror.NewValidation("order count cannot be negative").
			WithDetail("field", "orderCount")
	}
	if o.CompletedQuantity < 0 {
		return apperror.NewValidation("completed quantity cannot be negative").
			WithDetail("field", "completedQuantity")
	}

	return nil
}

// Remaining returns the quantity still to produce.
func (o *Order) Remaining() int {
	r := o.OrderCount - o.CompletedQuantity
	if r < 0 {
		return 0
	}
	return r
}
