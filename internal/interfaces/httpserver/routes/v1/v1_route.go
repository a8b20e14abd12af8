package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kawan-server/internal/config"
	"kawan-server/internal/interfaces/httpserver/routes/v1/admin"
	"kawan-server/internal/interfaces/httpserver/routes/v1/chat"
	"kawan-server/internal/interfaces/httpserver/routes/v1/persona"
)

type V1Route struct {
	chat    *chat.ChatRoute
	admin   *admin.AdminRoute
	persona *persona.PersonaRoute
}

func NewV1Route(
	chat *chat.ChatRoute,
	admin *admin.AdminRoute,
	persona *persona.PersonaRoute,
) *V1Route {
	return &V1Route{
		chat,
		admin,
		persona,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	v1Route.chat.RegisterRouter(v1Router)
	v1Route.admin.RegisterRouter(v1Router)
	v1Route.persona.RegisterRouter(v1Router)
}

// GetVersion returns the current build version of the server.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}

// GetHealthz reports process liveness for orchestrators.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz reports whether the service is ready to accept traffic.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
