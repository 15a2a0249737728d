package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	System   *handler.SystemHandler
}

// Middleware carries the route-scoped middleware. Authenticate guards the
// customer and admin groups. AuthRateLimit, when set, throttles the
// credential endpoints.
type Middleware struct {
	Authenticate  gin.HandlerFunc
	AuthRateLimit gin.HandlerFunc
}

// Router mounts the storefront API on a gin engine.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	handlers   Handlers
	middleware Middleware
}

// Option is a functional option for Router configuration
type Option func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// New creates a Router. Routes are not registered until Setup is called.
func New(engine *gin.Engine, h Handlers, mw Middleware, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		handlers:   h,
		middleware: mw,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Setup registers all routes with the engine.
func (r *Router) Setup() {
	// Health and system endpoints stay unversioned so probes survive an
	// API version bump.
	r.engine.GET("/health", r.handlers.System.Health)
	system := r.engine.Group("/system")
	system.GET("/info", r.handlers.System.GetSystemInfo)
	system.GET("/ping", r.handlers.System.Ping)

	api := r.engine.Group("/api/" + r.apiVersion)

	// Public catalog reads
	api.GET("/products", r.handlers.Product.List)
	api.GET("/products/:id", r.handlers.Product.GetByID)
	api.GET("/products/:id/availability", r.handlers.Product.CheckAvailability)
	api.GET("/products/:id/reviews", r.handlers.Review.ListByProduct)
	api.GET("/categories", r.handlers.Category.List)
	api.GET("/categories/:id", r.handlers.Category.GetByID)

	// Credential endpoints
	credentials := api.Group("/auth")
	if r.middleware.AuthRateLimit != nil {
		credentials.Use(r.middleware.AuthRateLimit)
	}
	credentials.POST("/register", r.handlers.Auth.Register)
	credentials.POST("/login", r.handlers.Auth.Login)

	// Everything below requires a valid access token
	authed := api.Group("", r.middleware.Authenticate)
	authed.POST("/auth/logout", r.handlers.Auth.Logout)
	authed.GET("/auth/me", r.handlers.Auth.Me)

	cart := authed.Group("/cart")
	cart.GET("", r.handlers.Cart.Get)
	cart.DELETE("", r.handlers.Cart.Clear)
	cart.POST("/items", r.handlers.Cart.AddItem)
	cart.PUT("/items/:productId", r.handlers.Cart.UpdateItem)
	cart.DELETE("/items/:productId", r.handlers.Cart.RemoveItem)

	orders := authed.Group("/orders")
	orders.POST("", r.handlers.Order.Create)
	orders.GET("", r.handlers.Order.ListMine)
	orders.GET("/:id", r.handlers.Order.Get)
	orders.POST("/:id/cancel", r.handlers.Order.Cancel)

	authed.POST("/products/:id/reviews", r.handlers.Review.Create)
	authed.GET("/reviews/mine", r.handlers.Review.ListMine)
	authed.PUT("/reviews/:id", r.handlers.Review.Update)
	authed.DELETE("/reviews/:id", r.handlers.Review.Delete)

	admin := api.Group("/admin", r.middleware.Authenticate, middleware.RequireAdmin())
	admin.POST("/products", r.handlers.Product.Create)
	admin.PUT("/products/:id", r.handlers.Product.Update)
	admin.POST("/products/:id/activate", r.handlers.Product.Activate)
	admin.POST("/products/:id/deactivate", r.handlers.Product.Deactivate)
	admin.DELETE("/products/:id", r.handlers.Product.Delete)
	admin.POST("/categories", r.handlers.Category.Create)
	admin.PUT("/categories/:id", r.handlers.Category.Update)
	admin.DELETE("/categories/:id", r.handlers.Category.Delete)
	admin.GET("/orders", r.handlers.Order.ListAll)
	admin.GET("/orders/:id", r.handlers.Order.GetAny)
	admin.PUT("/orders/:id/status", r.handlers.Order.UpdateStatus)
}
