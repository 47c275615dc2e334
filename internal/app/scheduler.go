package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StartMoversRefresh schedules the periodic market-movers cache refresh.
// Each run forces a fresh sweep so the cached ranking stays warm between
// dashboard requests. No-op when refresh is disabled in config.
func (a *App) StartMoversRefresh() error {
	if !a.Config.Refresh.Enabled {
		a.Logger.Debug().Msg("Movers refresh disabled")
		return nil
	}

	c := cron.New()
	spec := a.Config.Refresh.MoversCron

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		start := time.Now()
		if _, err := a.MoversService.GetMovers(ctx, true); err != nil {
			a.Logger.Warn().Err(err).Msg("Scheduled movers refresh failed")
			return
		}
		a.Logger.Info().Dur("duration", time.Since(start)).Msg("Movers cache refreshed")
	})
	if err != nil {
		return fmt.Errorf("invalid movers refresh schedule %q: %w", spec, err)
	}

	c.Start()
	a.cron = c
	a.Logger.Info().Str("schedule", spec).Msg("Movers refresh scheduled")
	return nil
}
