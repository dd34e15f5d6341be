// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"uretimtrack/internal/infrastructure/http/v1/middleware"
)

// EntityRouteHandler defines the routes every entity handler serves.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	CreateBulk(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetActive(c *gin.Context)
}

// RegisterEntityRoutes registers standard CRUD + bulk routes for an
// entity. Bulk inserts carry their own, tighter rate limit.
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler, bulkLimiter *middleware.RateLimiter) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.POST("/bulk", middleware.RateLimit(bulkLimiter), handler.CreateBulk)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/active", handler.SetActive)
}

// CatalogRouteHandler adds code-based lookup to the entity routes.
type CatalogRouteHandler interface {
	EntityRouteHandler
	GetByCode(c *gin.Context)
}

// RegisterCatalogRoutes registers entity routes plus GET /code/:code.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, bulkLimiter *middleware.RateLimiter) {
	RegisterEntityRoutes(group, handler, bulkLimiter)
	group.GET("/code/:code", handler.GetByCode)
}
