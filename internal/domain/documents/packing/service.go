package packing

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// ProductChecker verifies a product code references an existing product.
type ProductChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// Service provides business logic for packing documents.
type Service struct {
	*domain.Service[*Packing]
	repo     Repository
	products ProductChecker
}

// NewService creates a new Packing service.
func NewService(repo Repository, products ProductChecker, txManager tx.Manager) *Service {
	base := domain.NewService(domain.ServiceConfig[*Packing]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "packing",
	})

	svc := &Service{
		Service:  base,
		repo:     repo,
		products: products,
	}

	base.Hooks().OnBeforeCreate(svc.checkProduct)
	base.Hooks().OnBeforeUpdate(svc.checkProduct)

	return svc
}

func (s *Service) checkProduct(ctx context.Context, p *Packing) error {
	exists, err := s.products.ExistsByCode(ctx, p.ProductCode)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("product does not exist").
			WithDetail("field", "productCode").
			WithDetail("value", p.ProductCode)
	}
	return nil
}
