package health_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"
)

// Status is the body of a health check.
type Status struct {
	Store string `json:"store"`
	Redis string `json:"redis"`
}

// Controller reports whether the storefront's backends are reachable.
type Controller struct {
	store   docstore.Store
	redis   *redis.Client
	timeout time.Duration
	log     *zap.Logger
}

// New builds a health controller. rdb may be nil when rate limiting runs
// in-process.
func New(store docstore.Store, rdb *redis.Client, timeout time.Duration, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Controller{store: store, redis: rdb, timeout: timeout, log: log}
}

// Health pings the document store and, when configured, Redis. It answers
// 503 when either is unreachable.
func (ctrl *Controller) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.timeout)
	defer cancel()

	status := Status{Store: statusOK, Redis: statusDisabled}
	healthy := true

	if err := ctrl.store.Ping(ctx); err != nil {
		ctrl.log.Warn("store health check failed", zap.Error(err))
		status.Store = statusDown
		healthy = false
	}
	if ctrl.redis != nil {
		status.Redis = statusOK
		if err := ctrl.redis.Ping(ctx).Err(); err != nil {
			// Rate limiting fails open; report it and stay healthy.
			ctrl.log.Warn("redis health check failed", zap.Error(err))
			status.Redis = statusDown
		}
	}

	if !healthy {
		resp := models.ErrorResponse(c, "Service unavailable")
		resp.Data = status
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Service healthy", status))
}
