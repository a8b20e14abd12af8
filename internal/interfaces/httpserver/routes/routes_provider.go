package routes

import (
	"github.com/google/wire"

	"kawan-server/internal/interfaces/httpserver/handlers/adminhandler"
	"kawan-server/internal/interfaces/httpserver/handlers/chathandler"
	"kawan-server/internal/interfaces/httpserver/handlers/personahandler"
	"kawan-server/internal/interfaces/httpserver/handlers/usagehandler"
	v1 "kawan-server/internal/interfaces/httpserver/routes/v1"
	"kawan-server/internal/interfaces/httpserver/routes/v1/admin"
	"kawan-server/internal/interfaces/httpserver/routes/v1/chat"
	"kawan-server/internal/interfaces/httpserver/routes/v1/persona"
)

var RouteProvider = wire.NewSet(
	// Handlers
	chathandler.NewHandler,
	usagehandler.NewHandler,
	adminhandler.NewHandler,
	personahandler.NewHandler,

	// Routes
	v1.NewV1Route,
	chat.NewChatRoute,
	admin.NewAdminRoute,
	persona.NewPersonaRoute,
)
