package domain

import (
	"github.com/google/wire"

	"kawan-server/internal/domain/usage"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Usage domain
	usage.NewService,
)
