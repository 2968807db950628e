package product_controller

import (
	"context"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"go.uber.org/zap"
)

// Controller serves the storefront catalogue as JSON.
type Controller struct {
	loader   *catalog.Loader
	log      *zap.Logger
	pageSize int
	match    catalog.MatchOptions
	storeCtx func(context.Context) (context.Context, context.CancelFunc)
}

// Options carries the catalogue settings shared with the HTML pages.
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
