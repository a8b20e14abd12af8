package admin

import (
	"github.com/gin-gonic/gin"

	"kawan-server/internal/interfaces/httpserver/handlers/adminhandler"
	"kawan-server/internal/interfaces/httpserver/handlers/usagehandler"
)

// AdminRoute handles usage reporting and storage administration routes
type AdminRoute struct {
	usageHandler *usagehandler.Handler
	adminHandler *adminhandler.Handler
}

// NewAdminRoute creates a new AdminRoute
func NewAdminRoute(usageHandler *usagehandler.Handler, adminHandler *adminhandler.Handler) *AdminRoute {
	return &AdminRoute{
		usageHandler: usageHandler,
		adminHandler: adminHandler,
	}
}

// RegisterRouter registers the admin routes
func (r *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin")
	adminRouter.GET("/usage", r.usageHandler.GetUsage)
	adminRouter.GET("/init-db", r.adminHandler.InitDB)
}
