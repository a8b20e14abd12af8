package personahandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kawan-server/internal/domain/persona"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ListPersonas returns the persona catalog without system prompts.
func (h *Handler) ListPersonas(c *gin.Context) {
	personas := persona.List()

	out := make([]gin.H, 0, len(personas))
	for _, p := range personas {
		out = append(out, gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"icon":        p.Icon,
		})
	}

	c.JSON(http.StatusOK, gin.H{"personas": out})
}
