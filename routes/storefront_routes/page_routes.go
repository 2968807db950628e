package storefront_routes

import (
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/health_controller"
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/storefront/page_controller"
	"github.com/gin-gonic/gin"
)

// SetupPageRoutes registers the HTML storefront. The engine must already carry
// page_controller.Templates.
func SetupPageRoutes(router *gin.Engine, pages *page_controller.Controller) {
	router.GET("/", pages.CatalogPage)
	router.GET("/product/:productId", pages.ProductPage)
	router.GET("/politicasPrivacidade", pages.PrivacyPage)
	router.NoRoute(pages.NotFoundPage)
}

func SetupHealthRoutes(router *gin.Engine, health *health_controller.Controller) {
	router.GET("/healthz", health.Health)
}
