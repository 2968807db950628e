package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

type ApiResponse struct {
	Message         string       `json:"message"`
	Data            any          `json:"data,omitempty"`
	Error           bool         `json:"error,omitempty"`
	Meta            *Pagination  `json:"meta"`
	Rate            *RateLimiter `json:"rate_limit,omitempty"`
	RequestedEntity string       `json:"requested_entity,omitempty"`
	RequestID       string       `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"40"`
	Total      int `json:"total" example:"45"`
	TotalPages int `json:"total_pages" example:"2"`
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

// Context keys shared between middleware and response helpers.
const (
	RateLimiterKey = "rateLimiter"
	RequestIDKey   = "requestID"
)

// helper to fetch rate limiter info from Gin context
func getRateFromContext(c *gin.Context) *RateLimiter {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get(RateLimiterKey); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func newResponse(c *gin.Context, message string) ApiResponse {
	resp := ApiResponse{
		Message: message,
		Rate:    getRateFromContext(c),
	}
	if c != nil && c.Request != nil {
		resp.RequestedEntity = c.Request.Method + " " + c.FullPath()
		resp.RequestID = c.GetString(RequestIDKey)
	}
	return resp
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	resp := newResponse(c, message)
	resp.Data = data
	return resp
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	resp := newResponse(c, message)
	resp.Data = data
	resp.Meta = meta
	return resp
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	resp := newResponse(c, message)
	resp.Error = true
	return resp
}
