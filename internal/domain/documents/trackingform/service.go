package trackingform

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// ProductChecker verifies a product code references an existing product.
type ProductChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// OperationChecker verifies referenced operations exist.
type OperationChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for production tracking forms.
type Service struct {
	*domain.Service[*TrackingForm]
	repo       Repository
	products   ProductChecker
	operations OperationChecker
}

// NewService creates a new TrackingForm service.
func NewService(repo Repository, products ProductChecker, operations OperationChecker, txManager tx.Manager) *Service {
	base := domain.NewService(domain.ServiceConfig[*TrackingForm]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "tracking form",
	})

	svc := &Service{
		Service:    base,
		repo:       repo,
		products:   products,
		operations: operations,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferences)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)

	return svc
}

func (s *Service) checkReferences(ctx context.Context, f *TrackingForm) error {
	exists, err := s.products.ExistsByCode(ctx, f.ProductCode)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("product does not exist").
			WithDetail("field", "productCode").
			WithDetail("value", f.ProductCode)
	}

	exists, err = s.operations.Exists(ctx, f.OperationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("operation does not exist").
			WithDetail("field", "operationId").
			WithDetail("value", f.OperationID.String())
	}

	return nil
}
