package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain"
	"uretimtrack/internal/infrastructure/http/v1/dto"
)

// defaultMaxBulk bounds how many records a single bulk request may
// carry when no limit is configured.
const defaultMaxBulk = 250

// entityService is the slice of the domain service the generic handler
// needs. Both catalog and document services satisfy it.
type entityService[T entity.Validatable] interface {
	Create(ctx context.Context, e T) error
	CreateBulk(ctx context.Context, entities []T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, entityID id.ID) error
	SetActive(ctx context.Context, entityID id.ID, active bool) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// EntityHandler provides generic HTTP handlers for catalog and document
// entities. Mappers convert request DTOs to domain entities; responses
// serialize the entities directly.
type EntityHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    entityService[T]
	entityName string
	maxBulk    int

	mapCreate func(req CreateDTO) (T, error)
	mapUpdate func(req UpdateDTO, existing T) error
}

// EntityHandlerConfig configures the generic handler.
type EntityHandlerConfig[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service    entityService[T]
	EntityName string
	// MaxBulk caps bulk create requests; zero means the default.
	MaxBulk   int
	MapCreate func(req CreateDTO) (T, error)
	MapUpdate func(req UpdateDTO, existing T) error
}

// NewEntityHandler creates a new generic entity handler.
func NewEntityHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg EntityHandlerConfig[T, CreateDTO, UpdateDTO],
) *EntityHandler[T, CreateDTO, UpdateDTO] {
	maxBulk := cfg.MaxBulk
	if maxBulk <= 0 {
		maxBulk = defaultMaxBulk
	}
	return &EntityHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler: base,
		service:     cfg.Service,
		entityName:  cfg.EntityName,
		maxBulk:     maxBulk,
		mapCreate:   cfg.MapCreate,
		mapUpdate:   cfg.MapUpdate,
	}
}

// List handles GET /{entity}.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result))
}

// Get handles GET /{entity}/:id.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}

// Create handles POST /{entity}.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.mapCreate(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, item)
}

// CreateBulk handles POST /{entity}/bulk.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) CreateBulk(c *gin.Context) {
	var reqs []CreateDTO
	if !h.BindJSON(c, &reqs) {
		return
	}
	if len(reqs) == 0 {
		h.Error(c, apperror.NewValidation("bulk request must contain at least one record"))
		return
	}
	if len(reqs) > h.maxBulk {
		h.Error(c, apperror.NewValidation("bulk request too large").
			WithDetail("max", h.maxBulk).
			WithDetail("got", len(reqs)))
		return
	}

	entities := make([]T, 0, len(reqs))
	for i, req := range reqs {
		item, err := h.mapCreate(req)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				h.Error(c, appErr.WithDetail("index", i))
			} else {
				h.Error(c, err)
			}
			return
		}
		entities = append(entities, item)
	}

	if err := h.service.CreateBulk(c.Request.Context(), entities); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.BulkCreateResponse{Inserted: len(entities)})
}

// Update handles PUT /{entity}/:id.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.mapUpdate(req, existing); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), existing); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, existing)
}

// Delete handles DELETE /{entity}/:id (soft delete).
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// codeService is the extra slice catalog services expose on top of
// entityService.
type codeService[T entity.Validatable] interface {
	GetByCode(ctx context.Context, code string) (T, error)
}

// CatalogEntityHandler adds code-based lookup to the generic handlers.
type CatalogEntityHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*EntityHandler[T, CreateDTO, UpdateDTO]
	codes codeService[T]
}

// NewCatalogEntityHandler wraps the generic handler for a catalog service.
func NewCatalogEntityHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	codes codeService[T],
	cfg EntityHandlerConfig[T, CreateDTO, UpdateDTO],
) *CatalogEntityHandler[T, CreateDTO, UpdateDTO] {
	return &CatalogEntityHandler[T, CreateDTO, UpdateDTO]{
		EntityHandler: NewEntityHandler(base, cfg),
		codes:         codes,
	}
}

// GetByCode handles GET /{entity}/code/:code. Only active entities are
// addressable by code.
func (h *CatalogEntityHandler[T, CreateDTO, UpdateDTO]) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.Error(c, apperror.NewValidation("code is required"))
		return
	}

	item, err := h.codes.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}

// SetActive handles POST /{entity}/:id/active.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) SetActive(c *gin.Context) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetActive(c.Request.Context(), entityID, req.Active); err != nil {
		h.Error(c, err)
		return
	}

	h.OKMessage(c, "active flag updated", nil)
}
