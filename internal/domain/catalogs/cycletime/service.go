package cycletime

import (
	"context"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/core/tx"
	"uretimtrack/internal/domain"
)

// ReferenceChecker verifies referenced catalog entries exist.
type ReferenceChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for the CycleTime catalog.
type Service struct {
	*domain.Service[*CycleTime]
	repo       Repository
	products   ReferenceChecker
	operations ReferenceChecker
}

// NewService creates a new CycleTime service.
func NewService(repo Repository, products, operations ReferenceChecker, txManager tx.Manager) *Service {
	base := domain.NewService(domain.ServiceConfig[*CycleTime]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "cycle time",
	})

	svc := &Service{
		Service:    base,
		repo:       repo,
		products:   products,
		operations: operations,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferences)
	base.Hooks().OnBeforeCreate(svc.checkPairUnique)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)
	base.Hooks().OnBeforeUpdate(svc.checkPairUnique)

	return svc
}

// FindByPair retrieves the cycle time for a (product, operation) pair.
func (s *Service) FindByPair(ctx context.Context, productID, operationID id.ID) (*CycleTime, error) {
	return s.repo.FindByPair(ctx, productID, operationID)
}

func (s *Service) checkReferences(ctx context.Context, ct *CycleTime) error {
	exists, err := s.products.Exists(ctx, ct.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("product does not exist").
			WithDetail("field", "productId").
			WithDetail("value", ct.ProductID.String())
	}

	exists, err = s.operations.Exists(ctx, ct.OperationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("operation does not exist").
			WithDetail("field", "operationId").
			WithDetail("value", ct.OperationID.String())
	}

	return nil
}

// checkPairUnique rejects a second active cycle time for the same
// (product, operation) pair. A partial unique index backs this at the
// database level; the pre-check yields the friendlier error.
func (s *Service) checkPairUnique(ctx context.Context, ct *CycleTime) error {
	existing, err := s.repo.FindByPair(ctx, ct.ProductID, ct.OperationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != ct.ID {
		return apperror.NewDuplicate("cycle time", "product_id, operation_id",
			ct.ProductID.String()+", "+ct.OperationID.String())
	}
	return nil
}
