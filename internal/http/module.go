// Package http provides HTTP server infrastructure including the Module
// interface that domain modules implement for route registration.
package http

import "github.com/gin-gonic/gin"

// Module represents a bounded context that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the /api group.
	RegisterRoutes(api *gin.RouterGroup)
}
