package main

import (
	"context"

	"github.com/rs/zerolog"

	"kawan-server/internal/domain/usage"
)

type DataInitializer struct {
	usageService *usage.Service
	logger       zerolog.Logger
}

// Install provisions the usage storage backend before the server starts
// accepting traffic. This mirrors what the init-db endpoint does, so a
// fresh deployment works without an operator call.
func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.usageService.Initialize(ctx); err != nil {
		return err
	}
	d.logger.Info().Str("backend", d.usageService.Backend()).Msg("usage storage ready")
	return nil
}
