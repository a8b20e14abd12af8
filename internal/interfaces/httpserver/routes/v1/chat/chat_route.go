package chat

import (
	"github.com/gin-gonic/gin"

	"kawan-server/internal/interfaces/httpserver/handlers/chathandler"
)

// ChatRoute handles streamed chat routes
type ChatRoute struct {
	handler *chathandler.Handler
}

// NewChatRoute creates a new ChatRoute
func NewChatRoute(handler *chathandler.Handler) *ChatRoute {
	return &ChatRoute{handler: handler}
}

// RegisterRouter registers the chat routes
func (r *ChatRoute) RegisterRouter(router gin.IRouter) {
	chatRouter := router.Group("/chat")
	chatRouter.POST("", r.handler.Chat)
}
