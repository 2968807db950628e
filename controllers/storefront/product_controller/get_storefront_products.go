package product_controller

import (
	"net/http"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description List catalogue products filtered by name substring and category, 40 per page
// @Tags store
// @Produce json
// @Param q query string false "Case-insensitive name substring"
// @Param category query string false "Exact category"
// @Param page query int false "Page number (default: 1, clamped to the last page)"
// @Success 200 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products [get]
func (ctrl *Controller) GetStorefrontProducts(c *gin.Context) {
	ctx, cancel := ctrl.withTimeout(c.Request.Context())
	defer cancel()

	sess := catalog.NewSession(ctrl.loader,
		catalog.WithPageSize(ctrl.pageSize),
		catalog.WithMatchOptions(ctrl.match),
	)
	defer sess.Close()

	if err := sess.Load(ctx); err != nil {
		ctrl.log.Error("failed to load storefront products", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load products"))
		return
	}

	term, category := parseFilters(c)
	sess.SetSearchTerm(term)
	sess.SetCategory(category)
	sess.SetPage(parsePage(c))

	view := sess.View()
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", toCards(view.Products), paginationMeta(view)))
}
