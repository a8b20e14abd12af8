package interfaces

import (
	"github.com/google/wire"

	"kawan-server/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
