package page_controller

import (
	"context"
	"net/url"
	"strconv"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"go.uber.org/zap"
)

// SiteName is shown in titles and the footer.
const SiteName = "Dinâmico Tech"

const copyrightYear = 2024

// SocialLink is one icon link in the footer.
type SocialLink struct {
	Name string
	URL  string
}

var socialLinks = []SocialLink{
	{Name: "Facebook", URL: "https://www.facebook.com/profile.php?id=61555694101933"},
	{Name: "Instagram", URL: "https://www.instagram.com/dinamicotech/"},
	{Name: "YouTube", URL: "https://www.youtube.com/channel/UCYdSeDHJocMbMAfkj7k3oYA"},
	{Name: "Pinterest", URL: "https://br.pinterest.com/DinamicoTech/"},
	{Name: "TikTok", URL: "https://www.tiktok.com/@dinamico_tech"},
}

// Controller renders the storefront HTML pages.
type Controller struct {
	loader   *catalog.Loader
	log      *zap.Logger
	pageSize int
	match    catalog.MatchOptions
	storeCtx func(context.Context) (context.Context, context.CancelFunc)
}

// Options mirrors product_controller.Options.
type Options struct {
	PageSize int
	Match    catalog.MatchOptions
	// StoreContext bounds each store call, typically config.Config.WithTimeout.
	// Nil leaves calls bounded only by the request.
	StoreContext func(context.Context) (context.Context, context.CancelFunc)
}

func New(loader *catalog.Loader, log *zap.Logger, opts Options) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PageSize < 1 {
		opts.PageSize = catalog.DefaultPageSize
	}
	return &Controller{
		loader:   loader,
		log:      log,
		pageSize: opts.PageSize,
		match:    opts.Match,
		storeCtx: opts.StoreContext,
	}
}

func (ctrl *Controller) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if ctrl.storeCtx == nil {
		return context.WithCancel(parent)
	}
	return ctrl.storeCtx(parent)
}

// layout is the data every template shares.
type layout struct {
	Title       string
	SiteName    string
	Year        int
	SocialLinks []SocialLink
}

func (ctrl *Controller) layout(title string) layout {
	if title == "" {
		title = SiteName
	} else {
		title = title + " - " + SiteName
	}
	return layout{Title: title, SiteName: SiteName, Year: copyrightYear, SocialLinks: socialLinks}
}

// productURL links to a product page. Keys may hold characters such as '?'
// that end a path, so the id is escaped as one segment.
func productURL(id string) string {
	return "/product/" + url.PathEscape(id)
}

// catalogURL builds a link to the catalogue keeping the current filters.
func catalogURL(term, category string, page int) string {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if category != "" {
		q.Set("category", category)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
