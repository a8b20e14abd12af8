package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"kawan-server/internal/config"
	"kawan-server/internal/domain/usage"
	"kawan-server/internal/infrastructure/inference"
	"kawan-server/internal/infrastructure/logger"
	"kawan-server/internal/infrastructure/metrics"
)

const (
	DefaultModelPollInterval = 15               // in minutes
	CronJobTimeout           = 2 * time.Minute  // Timeout for each cron job execution
)

type Crontab struct {
	ctab         *crontab.Crontab
	usageService *usage.Service
	modelClient  *inference.ModelClient
}

func NewCrontab(
	usageService *usage.Service,
	modelClient *inference.ModelClient,
) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		usageService: usageService,
		modelClient:  modelClient,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	cfg := config.GetGlobal()

	// execute once on server start
	if cfg == nil || cfg.ModelPollEnabled {
		c.pollProviderModels(ctx)
	}

	if cfg != nil && cfg.ModelPollEnabled {
		pollInterval := cfg.ModelPollIntervalMinutes
		if pollInterval <= 0 {
			pollInterval = DefaultModelPollInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", pollInterval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.pollProviderModels(jobCtx)
		}); err != nil {
			return fmt.Errorf("add model poll job: %w", err)
		}
	}

	if cfg == nil || cfg.UsageSnapshotEnabled {
		// Hourly usage snapshot, for diagnosing telemetry gaps from logs alone.
		if err := c.ctab.AddJob("0 * * * *", func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.logUsageSnapshot(jobCtx)
		}); err != nil {
			return fmt.Errorf("add usage snapshot job: %w", err)
		}
	}

	// Reload env-backed config every minute
	if err := c.ctab.AddJob("* * * * *", func() {
		if _, err := config.Load(); err != nil {
			log := logger.GetLogger()
			log.Error().Err(err).Msg("config reload failed")
		}
	}); err != nil {
		return fmt.Errorf("add env reload job: %w", err)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) pollProviderModels(ctx context.Context) {
	log := logger.GetLogger()

	models, err := c.modelClient.ListModels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list provider models")
		metrics.SetProviderHealth(false)
		return
	}

	metrics.SetProviderHealth(true)
	log.Info().Int("count", len(models)).Msg("provider model listing ok")
}

func (c *Crontab) logUsageSnapshot(ctx context.Context) {
	total := c.usageService.Total(ctx)
	log := logger.GetLogger()
	log.Info().
		Str("backend", c.usageService.Backend()).
		Int("total_requests", total.TotalRequests).
		Int("total_tokens", total.TotalTokens).
		Int("total_users", total.TotalUsers).
		Str("estimated_cost_usd", total.EstimatedCostUSD.String()).
		Msg("usage snapshot")
}
