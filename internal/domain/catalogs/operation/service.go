package operation

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// Service provides business logic for the Operation catalog.
type Service struct {
	*domain.CatalogService[*Operation]
	repo Repository
}

// NewService creates a new Operation service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(repo, txManager, "operation")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUniqueForUpdate)

	return svc
}

func (s *Service) checkCodeUnique(ctx context.Context, op *Operation) error {
	exists, err := s.repo.ExistsByCode(ctx, op.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("operation", "code", op.Code)
	}
	return nil
}

func (s *Service) checkCodeUniqueForUpdate(ctx context.Context, op *Operation) error {
	existing, err := s.repo.GetByCode(ctx, op.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != op.ID {
		return apperror.NewDuplicate("operation", "code", op.Code)
	}
	return nil
}
