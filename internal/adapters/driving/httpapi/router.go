package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/samchat/internal/core/ports/driving"
)

// Options configures the router middleware.
type Options struct {
	// RateLimitRequests per RateLimitWindow per client IP on the
	// /api group. Zero requests disables rate limiting (tests).
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the gin engine with all routes and middleware.
// The chat service must be fully constructed (index built) before the
// returned engine starts serving; the composition root enforces that.
func NewRouter(chat driving.ChatService, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	if opts.RateLimitRequests > 0 {
		api.Use(RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))
	}
	{
		api.POST("/chat", HandleChat(chat))
		api.GET("/conversations/:sessionId", HandleConversation(chat))
	}

	return router
}
