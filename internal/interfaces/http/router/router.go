// Package router assembles the HTTP route tree from per-domain registrars.
package router

import (
	"github.com/gin-gonic/gin"
)

// APIBasePath is the prefix shared by every JSON endpoint
const APIBasePath = "/api"

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine         *gin.Engine
	basePath       string
	middleware     []gin.HandlerFunc
	pageMiddleware []gin.HandlerFunc
	registrars     []RouteRegistrar
	pageRegistrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithBasePath overrides the API base path
func WithBasePath(path string) RouterOption {
	return func(r *Router) {
		r.basePath = path
	}
}

// WithAPIMiddleware adds middleware applied to the API group only,
// leaving page and probe routes untouched
func WithAPIMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithPageMiddleware adds middleware applied to the page group only
func WithPageMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.pageMiddleware = append(r.pageMiddleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:   engine,
		basePath: APIBasePath,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar for the API group
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterPages adds a RouteRegistrar for the engine root, used by the
// server-rendered pages
func (r *Router) RegisterPages(registrar RouteRegistrar) *Router {
	r.pageRegistrars = append(r.pageRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.basePath)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	root := r.engine.Group("")
	if len(r.pageMiddleware) > 0 {
		root.Use(r.pageMiddleware...)
	}
	for _, registrar := range r.pageRegistrars {
		registrar.RegisterRoutes(root)
	}
}
