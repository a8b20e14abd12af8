package usagehandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"kawan-server/internal/domain/usage"
)

const (
	defaultDays  = 30
	maxDays      = 365
	recordsLimit = 100
)

type Handler struct {
	usage *usage.Service
	log   zerolog.Logger
}

func NewHandler(usageService *usage.Service, log zerolog.Logger) *Handler {
	return &Handler{
		usage: usageService,
		log:   log.With().Str("handler", "usage").Logger(),
	}
}

// GetUsage serves aggregated token usage. The type query parameter selects
// the view; days bounds the daily window. Unrecognized types fall through
// to the full overview so dashboard clients always get a usable payload.
func (h *Handler) GetUsage(c *gin.Context) {
	queryType := c.DefaultQuery("type", "all")
	days := parseDays(c.DefaultQuery("days", ""))

	ctx := c.Request.Context()

	switch queryType {
	case "total":
		c.JSON(http.StatusOK, h.usage.Total(ctx))
	case "users":
		c.JSON(http.StatusOK, h.usage.Users(ctx))
	case "daily":
		c.JSON(http.StatusOK, h.usage.Daily(ctx, days))
	case "persona":
		c.JSON(http.StatusOK, h.usage.Persona(ctx))
	case "hourly":
		c.JSON(http.StatusOK, h.usage.Hourly(ctx))
	case "records":
		c.JSON(http.StatusOK, h.usage.Records(ctx, recordsLimit))
	default:
		c.JSON(http.StatusOK, h.usage.Overview(ctx, days))
	}
}

func parseDays(raw string) int {
	if raw == "" {
		return defaultDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return defaultDays
	}
	if days > maxDays {
		return maxDays
	}
	return days
}
