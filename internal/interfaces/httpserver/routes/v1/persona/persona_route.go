package persona

import (
	"github.com/gin-gonic/gin"

	"kawan-server/internal/interfaces/httpserver/handlers/personahandler"
)

// PersonaRoute serves the persona catalog
type PersonaRoute struct {
	handler *personahandler.Handler
}

// NewPersonaRoute creates a new PersonaRoute
func NewPersonaRoute(handler *personahandler.Handler) *PersonaRoute {
	return &PersonaRoute{handler: handler}
}

// RegisterRouter registers the persona routes
func (r *PersonaRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/personas", r.handler.ListPersonas)
}
