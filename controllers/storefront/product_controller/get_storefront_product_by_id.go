package product_controller

import (
	"errors"
	"net/http"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStorefrontProductByID godoc
// @Summary Get single product details for storefront
// @Description Get detailed product information by ID
// @Tags store
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/{id} [get]
func (ctrl *Controller) GetStorefrontProductByID(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := ctrl.withTimeout(c.Request.Context())
	defer cancel()

	product, err := ctrl.loader.FetchByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		ctrl.log.Error("failed to fetch storefront product", zap.String("id", productID), zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
