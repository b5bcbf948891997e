// internal/app/router.go
package app

import (
	catalogHandler "artisan-catalog-service/internal/handlers/catalog"
	customerHandler "artisan-catalog-service/internal/handlers/customer"
	dispatchHandler "artisan-catalog-service/internal/handlers/dispatch"
	profileHandler "artisan-catalog-service/internal/handlers/profile"
	"artisan-catalog-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler *customerHandler.CustomerHandler
	CatalogHandler  *catalogHandler.CatalogHandler
	DispatchHandler *dispatchHandler.DispatchHandler
	ProfileHandler  *profileHandler.ProfileHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Artisan Profile ====================
	profile := api.Group("/profile")
	profile.Use(h.AuthMiddleware.Auth())
	{
		profile.GET("", h.ProfileHandler.GetProfile)
		profile.PUT("", h.ProfileHandler.UpdateProfile)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/tags", h.DispatchHandler.GetTagGroups)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)

		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)

		// Tag management
		customers.POST("/:id/tags", h.CustomerHandler.AddTag)
		customers.DELETE("/:id/tags", h.CustomerHandler.RemoveTag) // ?tag=xxx
	}

	// ==================== Catalogs ====================
	catalogs := api.Group("/catalogs")
	catalogs.Use(h.AuthMiddleware.Auth())
	{
		catalogs.POST("", h.CatalogHandler.GenerateCatalog)
		catalogs.GET("", h.CatalogHandler.ListCatalogs)
	}

	// ==================== Dispatches ====================
	dispatches := api.Group("/dispatches")
	dispatches.Use(h.AuthMiddleware.Auth())
	{
		dispatches.POST("", h.DispatchHandler.DispatchCatalog)
		dispatches.GET("/shares", h.DispatchHandler.ShareHistory)
	}
}
