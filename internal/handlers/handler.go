package handlers

import (
	"math"
	"strconv"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	retryAfter string // Retry-After seconds sent while the printer is unavailable
}

// Option customizes a Handler.
type Option func(*Handler)

// WithPollInterval sets the Retry-After hint to the configured poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.retryAfter = retryAfterHeader(d)
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:   services,
		log:        log,
		retryAfter: retryAfterHeader(service.DefaultPollInterval),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// retryAfterHeader renders d as whole seconds, rounded up, at least 1.
func retryAfterHeader(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Accessory state stream over the same port; same bearer token as /api/v1.
	router.GET("/ws", h.userIdMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerAccessoryRoutes(api)
		h.registerEventRoutes(api)
	}
}

func (h *Handler) registerAccessoryRoutes(api *gin.RouterGroup) {
	accessory := api.Group("/accessory")
	{
		// Triggers one printer read, like the host's onGet.
		accessory.GET("/temperature", h.getTemperature)
		accessory.GET("/state", h.getState)
		accessory.GET("/info", h.getInfo)
	}
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	api.GET("/events", h.getEvents)
}
