package page_controller

import (
	"errors"
	"net/http"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type productPage struct {
	layout
	Product models.Product
}

// ProductPage renders one product. An unknown id gets a not-found page and a
// store failure an error page, never an endless loading state.
func (ctrl *Controller) ProductPage(c *gin.Context) {
	productID := c.Param("productId")

	ctx, cancel := ctrl.withTimeout(c.Request.Context())
	defer cancel()

	product, err := ctrl.loader.FetchByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		ctrl.renderError(c, http.StatusNotFound, "Produto não encontrado", "O produto que você procura não existe ou foi removido.")
		return
	}
	if err != nil {
		ctrl.log.Error("product page fetch failed", zap.String("id", productID), zap.Error(err))
		ctrl.renderError(c, http.StatusBadGateway, "Não foi possível carregar o produto", "Tente novamente em alguns instantes.")
		return
	}

	c.HTML(http.StatusOK, productTemplate, productPage{
		layout:  ctrl.layout(product.Name),
		Product: product,
	})
}
