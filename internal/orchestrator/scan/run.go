package scan

import (
	"context"
	"time"

	"vendorhub/internal/reminder"

	"github.com/rs/zerolog"
)

// Scanner runs one reminder scan.
type Scanner interface {
	ScanOnce(ctx context.Context) (reminder.Result, error)
}

// Run scans immediately and then on every interval until ctx is cancelled.
func Run(ctx context.Context, logger zerolog.Logger, scanner Scanner, interval time.Duration) error {
	logger.Info().Str("interval", interval.String()).Msg("Starting reminder scanner")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := scanner.ScanOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("Reminder scan failed")
		}
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down reminder scanner")
			return nil
		case <-ticker.C:
		}
	}
}
