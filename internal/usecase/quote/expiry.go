package quote

import (
	"context"
	"time"

	"cargolinked/internal/logger"

	"go.uber.org/zap"
)

// StartExpirySweep runs a background job that ages out stale pending
// quotes. Expiry is the only time-driven transition; it never runs on the
// synchronous request path.
func (s *Service) StartExpirySweep(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Quote expiry sweep started",
		zap.Duration("interval", interval),
		zap.Duration("ttl", ttl),
	)

	s.expireStaleQuotes(ctx, ttl)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Quote expiry sweep stopped")
			return
		case <-ticker.C:
			s.expireStaleQuotes(ctx, ttl)
		}
	}
}

func (s *Service) expireStaleQuotes(ctx context.Context, ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	expired, err := s.quoteRepo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to expire stale quotes", zap.Error(err))
		return
	}

	if expired > 0 {
		logger.Info("Stale quotes expired",
			zap.Int64("count", expired),
			zap.Time("cutoff", cutoff),
		)
	}
}
