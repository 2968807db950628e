package page_controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type catalogPage struct {
	layout
	View    catalog.View
	Cards   []productCard
	PrevURL string
	NextURL string

	// Pager reads "page / total"; "1 / 0" when nothing matches.
	Pager string
}

// CatalogPage renders the product grid with search, category select and
// prev/next navigation. Filters travel in the query string: q, category, page.
func (ctrl *Controller) CatalogPage(c *gin.Context) {
	ctx, cancel := ctrl.withTimeout(c.Request.Context())
	defer cancel()

	sess := catalog.NewSession(ctrl.loader,
		catalog.WithPageSize(ctrl.pageSize),
		catalog.WithMatchOptions(ctrl.match),
	)
	defer sess.Close()

	if err := sess.Load(ctx); err != nil {
		ctrl.log.Error("catalog page load failed", zap.Error(err))
		ctrl.renderError(c, http.StatusBadGateway, "Não foi possível carregar os produtos", "Tente novamente em alguns instantes.")
		return
	}

	sess.SetSearchTerm(strings.TrimSpace(c.Query("q")))
	sess.SetCategory(strings.TrimSpace(c.Query("category")))
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		sess.SetPage(page)
	}

	view := sess.View()
	data := catalogPage{
		layout: ctrl.layout(""),
		View:   view,
		Cards:  productCards(view.Products),
		Pager:  strconv.Itoa(view.Page) + " / " + strconv.Itoa(view.TotalPages),
	}
	if view.HasPrev() {
		data.PrevURL = catalogURL(view.SearchTerm, view.SelectedCategory, view.Page-1)
	}
	if view.HasNext() {
		data.NextURL = catalogURL(view.SearchTerm, view.SelectedCategory, view.Page+1)
	}
	c.HTML(http.StatusOK, catalogTemplate, data)
}

// productCard is one grid entry with its detail link already escaped.
type productCard struct {
	models.Product
	Href string
}

func productCards(products []models.Product) []productCard {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard{Product: p, Href: productURL(p.ID)})
	}
	return cards
}
