package router

import (
	"net/http"

	"github.com/PLZ-test/wms/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wires the middleware chain and versioned API groups
type Router struct {
	engine         *gin.Engine
	apiVersion     string
	trustedProxies []string
	registrars     []RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion sets the API version prefix
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithTrustedProxies restricts which proxies gin trusts for client IPs
func WithTrustedProxies(proxies []string) Option {
	return func(r *Router) {
		r.trustedProxies = proxies
	}
}

// New creates a Router over a bare gin engine, installing the request-ID,
// logging and recovery middleware
func New(logger *zap.Logger, opts ...Option) *Router {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
	)

	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}

	if len(r.trustedProxies) > 0 {
		if err := engine.SetTrustedProxies(r.trustedProxies); err != nil {
			logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	return r
}

// Register queues a handler for route registration
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers the health endpoint and every queued handler, and returns
// the http.Handler to serve
func (r *Router) Setup() http.Handler {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return r.engine
}
