// Package http hosts the Gin server and the Module interface each
// bounded context (leads, catalog, traffic, crm, insights, exports)
// implements to mount its routes.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module is a bounded context that registers its own HTTP routes,
// keeping the router decoupled from individual endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups handed to each module at
// registration time.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level
	// access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
}
