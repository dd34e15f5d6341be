// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/core/tx"
	"uretimtrack/pkg/logger"
)

// Service provides generic business logic shared by catalogs and documents.
// Concrete services embed it and add entity-specific validation via hooks.
type Service[T entity.Validatable] struct {
	repo      EntityRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// ServiceConfig configures the generic service.
type ServiceConfig[T entity.Validatable] struct {
	Repo       EntityRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewService creates a new generic service.
func NewService[T entity.Validatable](cfg ServiceConfig[T]) *Service[T] {
	return &Service[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the name used in error messages.
func (s *Service[T]) EntityName() string {
	return s.entityName
}

func (s *Service[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *Service[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but map not-found to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// Create creates a new entity.
func (s *Service[T]) Create(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, entity); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// After-create hooks run outside the transaction. Failures are logged,
	// not returned: the entity is already committed.
	if err := s.hooks.Run(ctx, AfterCreate, entity); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// CreateBulk validates and inserts several entities in a single transaction.
// The whole batch is rejected if any row fails validation; the offending
// row index is reported in error details.
func (s *Service[T]) CreateBulk(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return apperror.NewValidation("empty batch")
	}

	for i, e := range entities {
		if err := e.Validate(ctx); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("index", i)
			}
			return apperror.NewValidation(err.Error()).WithDetail("index", i)
		}
		if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("index", i)
			}
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateBatch(ctx, entities); err != nil {
			return fmt.Errorf("create %s batch: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range entities {
		if err := s.hooks.Run(ctx, AfterCreate, e); err != nil {
			logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
		}
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *Service[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// Update updates an existing entity.
func (s *Service[T]) Update(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, entity); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, entity); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete soft-deletes the entity (sets is_active=false).
func (s *Service[T]) Delete(ctx context.Context, entityID id.ID) error {
	// Load first so hooks see the full entity
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, entity); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetActive(ctx, entityID, false); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, entity); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// SetActive toggles the soft-delete flag without running delete hooks.
// After-update hooks still fire: visibility changes must reach the same
// listeners as regular updates.
func (s *Service[T]) SetActive(ctx context.Context, entityID id.ID, active bool) error {
	if err := s.repo.SetActive(ctx, entityID, active); err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		// The toggle is already committed; only the hooks are skipped.
		logger.Warn(ctx, "reload after active toggle failed, skipping hooks",
			"entity", s.entityName, "id", entityID.String(), "error", err)
		return nil
	}
	if err := s.hooks.Run(ctx, AfterUpdate, entity); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// List retrieves entities with filtering.
func (s *Service[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if entity exists.
func (s *Service[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// CatalogService extends Service with code-based lookups.
type CatalogService[T entity.Validatable] struct {
	*Service[T]
	repo CatalogRepository[T]
}

// NewCatalogService creates a catalog service over a code-addressable repository.
func NewCatalogService[T entity.Validatable](repo CatalogRepository[T], txManager tx.Manager, entityName string) *CatalogService[T] {
	return &CatalogService[T]{
		Service: NewService(ServiceConfig[T]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: entityName,
		}),
		repo: repo,
	}
}

// GetByCode retrieves entity by code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	entity, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return entity, s.normalizeGetErr(err, code)
	}
	return entity, nil
}

// ExistsByCode checks if entity with given code exists.
func (s *CatalogService[T]) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.repo.ExistsByCode(ctx, code)
}
