package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"kawan-server/internal/config"
	"kawan-server/internal/domain/usage"
	"kawan-server/internal/infrastructure/crontab"
	"kawan-server/internal/infrastructure/database"
	"kawan-server/internal/infrastructure/inference"
	"kawan-server/internal/infrastructure/logger"
	"kawan-server/internal/infrastructure/persistence"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideStore selects the usage storage backend from configuration.
// A configured DATABASE_URL selects Postgres, otherwise events are kept
// in a local JSON file.
func ProvideStore(cfg *config.Config, log zerolog.Logger) (usage.Store, error) {
	if !cfg.UsePostgres() {
		log.Info().Str("path", cfg.UsageFile).Msg("using file usage store")
		return persistence.NewFileStore(cfg.UsageFile, log), nil
	}

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&usage.Event{}); err != nil {
			log.Error().Err(err).Msg("usage table migration failed")
			return nil, err
		}
	}

	log.Info().Msg("using postgres usage store")
	return persistence.NewPostgresStore(db), nil
}

// ProvideInferenceClient provides the streaming completion client
func ProvideInferenceClient(cfg *config.Config, log zerolog.Logger) *inference.Client {
	return inference.NewClient(cfg, log)
}

// ProvideModelClient provides the provider model listing client
func ProvideModelClient(cfg *config.Config) *inference.ModelClient {
	return inference.NewModelClient(cfg)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	Store  usage.Store
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(store usage.Store, log zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		Store:  store,
		Logger: log,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Storage
	ProvideStore,

	// Inference clients
	ProvideInferenceClient,
	ProvideModelClient,

	// Logger
	logger.GetLogger,

	// Crontab for model polling and usage snapshots
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
