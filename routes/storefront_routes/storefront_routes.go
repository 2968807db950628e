package storefront_routes

import (
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/storefront/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup, ctrl *product_controller.Controller) {
	// Storefront routes (public, read-only)
	store := router.Group("/store")

	// Product routes
	products := store.Group("/products")
	{
		products.GET("", ctrl.GetStorefrontProducts) // List with filters

		products.GET("/filters", ctrl.GetProductFilters)    // Category facets
		products.GET("/:id", ctrl.GetStorefrontProductByID) // Single product
	}
}
