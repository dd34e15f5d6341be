package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
	"uretimtrack/pkg/numerator"
)

// documentNoPrefix is the prefix used for generated order numbers.
const documentNoPrefix = "ORD"

// ProductChecker verifies a product code references an existing product.
type ProductChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// NumberGenerator issues sequential document numbers.
type NumberGenerator interface {
	GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error)
}

// Service provides business logic for customer orders.
type Service struct {
	*domain.Service[*Order]
	repo     Repository
	products ProductChecker
	numbers  NumberGenerator
}

// NewService creates a new Order service. numbers may be nil, in which
// case orders with an empty document number are rejected by validation.
func NewService(repo Repository, products ProductChecker, numbers NumberGenerator, txManager tx.Manager) *Service {
	base := domain.NewService(domain.ServiceConfig[*Order]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "order",
	})

	svc := &Service{
		Service:  base,
		repo:     repo,
		products: products,
		numbers:  numbers,
	}

	base.Hooks().OnBeforeCreate(svc.checkProduct)
	base.Hooks().OnBeforeUpdate(svc.checkProduct)

	return svc
}

// Create assigns a document number when missing and delegates to the
// generic create.
func (s *Service) Create(ctx context.Context, o *Order) error {
	if err := s.assignDocumentNo(ctx, o); err != nil {
		return err
	}
	return s.Service.Create(ctx, o)
}

// CreateBulk assigns document numbers to rows missing one and delegates
// to the generic bulk create.
func (s *Service) CreateBulk(ctx context.Context, orders []*Order) error {
	for _, o := range orders {
		if err := s.assignDocumentNo(ctx, o); err != nil {
			return err
		}
	}
	return s.Service.CreateBulk(ctx, orders)
}

func (s *Service) assignDocumentNo(ctx context.Context, o *Order) error {
	if s.numbers == nil || strings.TrimSpace(o.DocumentNo) != "" {
		return nil
	}
	// Orders tolerate numbering gaps, so the cached strategy is enough.
	num, err := s.numbers.GetNextNumber(ctx, numerator.DefaultConfig(documentNoPrefix),
		&numerator.Options{Strategy: numerator.StrategyCached}, o.Date)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("generate document number: %w", err))
	}
	o.DocumentNo = num
	return nil
}

func (s *Service) checkProduct(ctx context.Context, o *Order) error {
	exists, err := s.products.ExistsByCode(ctx, o.ProductCode)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("product does not exist").
			WithDetail("field", "productCode").
			WithDetail("value", o.ProductCode)
	}
	return nil
}
