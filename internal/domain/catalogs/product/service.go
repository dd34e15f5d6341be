package product

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// OperationChecker verifies referenced operations exist.
// Implemented by the operation repository.
type OperationChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	operations OperationChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, operations OperationChecker, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(repo, txManager, "product")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		operations:     operations,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	exists, err := s.repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "code", p.Code)
	}
	return s.checkOperation(ctx, p)
}

func (s *Service) prepareForUpdate(ctx context.Context, p *Product) error {
	existing, err := s.repo.GetByCode(ctx, p.Code)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if err == nil && existing.ID != p.ID {
		return apperror.NewDuplicate("product", "code", p.Code)
	}
	return s.checkOperation(ctx, p)
}

func (s *Service) checkOperation(ctx context.Context, p *Product) error {
	exists, err := s.operations.Exists(ctx, p.LastOperationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("last operation does not exist").
			WithDetail("field", "lastOperationId").
			WithDetail("value", p.LastOperationID.String())
	}
	return nil
}
