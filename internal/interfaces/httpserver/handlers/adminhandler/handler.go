package adminhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"kawan-server/internal/domain/usage"
)

type Handler struct {
	usage *usage.Service
	log   zerolog.Logger
}

func NewHandler(usageService *usage.Service, log zerolog.Logger) *Handler {
	return &Handler{
		usage: usageService,
		log:   log.With().Str("handler", "admin").Logger(),
	}
}

// InitDB provisions the usage storage backend. Unlike the read paths this
// surfaces storage failures to the caller so operators see setup problems.
func (h *Handler) InitDB(c *gin.Context) {
	if err := h.usage.Initialize(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Str("backend", h.usage.Backend()).Msg("storage initialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "storage initialized (" + h.usage.Backend() + ")",
	})
}
