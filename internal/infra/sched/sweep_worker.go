package sched

import (
	"context"
	"time"

	"account-activation-service/internal/domain/ports/repository"
	"account-activation-service/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SweepWorker periodically purges expired activation codes. This is storage
// hygiene only: reads reject expired codes regardless, so the service is
// correct with the sweep disabled.
type SweepWorker struct {
	interval time.Duration
	codes    repository.ActivationCodeRepository
	log      *zerolog.Logger
}

func NewSweepWorker(interval time.Duration, codes repository.ActivationCodeRepository, logger *zerolog.Logger) *SweepWorker {
	sweepLog := logger.With().Str("component", "SweepWorker").Logger()
	return &SweepWorker{
		interval: interval,
		codes:    codes,
		log:      &sweepLog,
	}
}

func (w *SweepWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting sweep worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping sweep worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.codes.DeleteExpired(ctx, repository.NoTX, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("sweep worker error")
				continue
			}
			if n > 0 {
				metrics.AddCodesSwept(n)
				w.log.Info().Int64("count", n).Msg("expired activation codes purged")
			}
		}
	}
}
