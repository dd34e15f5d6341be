// Package operation provides the Operation catalog: manufacturing steps
// such as casting, machining, balancing. Products reference their final
// operation, which is what ties tracking forms to finished production.
package operation

import (
	"uretimtrack/internal/core/entity"
)

// Operation represents a single manufacturing step.
// Code is the short code used on shop-floor forms (e.g. "OP-30").
type Operation struct {
	entity.Catalog
}

// NewOperation creates a new Operation with required fields.
func NewOperation(code, name string) *Operation {
	return &Operation{
		Catalog: entity.NewCatalog(code, name),
	}
}
