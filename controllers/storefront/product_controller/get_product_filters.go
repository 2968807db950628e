package product_controller

import (
	"net/http"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProductFilters godoc
// @Summary Get available product filters
// @Description Categories present in the catalogue, in order of first appearance, with product counts
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/filters [get]
func (ctrl *Controller) GetProductFilters(c *gin.Context) {
	ctx, cancel := ctrl.withTimeout(c.Request.Context())
	defer cancel()

	products, err := ctrl.loader.Load(ctx)
	if err != nil {
		ctrl.log.Error("failed to load product filters", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to fetch filters"))
		return
	}

	filters := models.ProductFilters{
		Categories: catalog.CategoryFacets(products),
		Total:      len(products),
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters fetched successfully", filters))
}
