// Package scheduler runs periodic background maintenance tasks
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/aztec-interiors/fitflow/app/services"
)

// TokenReaper periodically sweeps expired form tokens out of the registry.
// Tokens are also removed lazily on validation, so the reaper only bounds
// the memory held by links that were issued but never opened.
type TokenReaper struct {
	tokenService services.FormTokenService
	logger       *log.Logger
	interval     time.Duration
}

func NewTokenReaper(tokenService services.FormTokenService, logger *log.Logger, interval time.Duration) *TokenReaper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TokenReaper{
		tokenService: tokenService,
		logger:       logger,
		interval:     interval,
	}
}

// Start launches the reaper loop in a background goroutine and returns a stop function
func (r *TokenReaper) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.runOnce()
			}
		}
	}()

	return cancel
}

func (r *TokenReaper) runOnce() {
	removed, remaining := r.tokenService.ReapExpired()
	if removed > 0 {
		r.logger.Printf("token reaper: removed %d expired tokens, %d remaining", removed, remaining)
	}
}
