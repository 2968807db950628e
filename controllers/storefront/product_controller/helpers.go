package product_controller

import (
	"strconv"
	"strings"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// parsePage reads ?page=, falling back to 1 for anything unusable.
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseFilters reads the search term and category from the query string.
func parseFilters(c *gin.Context) (term, category string) {
	return strings.TrimSpace(c.Query("q")), strings.TrimSpace(c.Query("category"))
}

func toCards(products []models.Product) []models.StorefrontProductResponse {
	cards := make([]models.StorefrontProductResponse, 0, len(products))
	for _, p := range products {
		cards = append(cards, models.NewStorefrontProductResponse(p))
	}
	return cards
}

func paginationMeta(v catalog.View) *models.Pagination {
	return &models.Pagination{
		Page:       v.Page,
		Limit:      v.PageSize,
		Total:      v.TotalItems,
		TotalPages: v.TotalPages,
	}
}
