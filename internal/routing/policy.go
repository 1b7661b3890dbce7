// Package routing decides, per call, whether to attempt remote extraction
// and recovers to the local deterministic engine when the remote path is
// unavailable, slow, or failing. A single process-wide cooldown deadline is
// the only cross-call state.
package routing

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/brightsteps/scribe/internal/engine"
	"github.com/brightsteps/scribe/internal/remote"
)

// RemoteExtractor is the remote extraction service contract.
type RemoteExtractor interface {
	Extract(ctx context.Context, text string) (*engine.ParsedInput, error)
}

// Config carries the policy's fixed parameters.
type Config struct {
	Enabled  bool
	Timeout  time.Duration // per-attempt remote budget
	Cooldown time.Duration // suppression window after a tripping failure
	// Offline, when set, reports whether the process is known to be
	// disconnected; a nil probe assumes connectivity.
	Offline func() bool
}

// Policy routes parse calls between the remote extractor and the local
// engine. The local engine always succeeds, so Parse never fails.
type Policy struct {
	remote RemoteExtractor
	cfg    Config
	logger *slog.Logger

	now           func() time.Time
	cooldownUntil atomic.Int64 // unix nanos; 0 means no active cooldown
}

func NewPolicy(rx RemoteExtractor, cfg Config, logger *slog.Logger) *Policy {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 4 * time.Second
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Minute
	}
	return &Policy{
		remote: rx,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Parse attempts the remote path when permitted, falling through to the
// deterministic engine on any failure, timeout, or unusable payload.
func (p *Policy) Parse(ctx context.Context, text string) engine.ParsedInput {
	if p.shouldAttemptRemote() {
		if result, ok := p.tryRemote(ctx, text); ok {
			return result
		}
	}
	return engine.Parse(text)
}

func (p *Policy) tryRemote(ctx context.Context, text string) (engine.ParsedInput, bool) {
	rctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	result, err := p.remote.Extract(rctx, text)
	if err != nil {
		if shouldTrip(err) {
			p.armCooldown()
			p.logger.Warn("remote extraction failed, cooling down",
				"error", err,
				"cooldown", p.cfg.Cooldown,
			)
		} else {
			p.logger.Warn("remote extraction failed", "error", err)
		}
		return engine.ParsedInput{}, false
	}

	p.cooldownUntil.Store(0)

	if !result.HasContent() {
		p.logger.Info("remote extraction returned no usable content, using local engine")
		return engine.ParsedInput{}, false
	}
	return *result, true
}

func (p *Policy) shouldAttemptRemote() bool {
	if p.remote == nil || !p.cfg.Enabled {
		return false
	}
	if p.cfg.Offline != nil && p.cfg.Offline() {
		return false
	}
	return p.now().UnixNano() >= p.cooldownUntil.Load()
}

func (p *Policy) armCooldown() {
	p.cooldownUntil.Store(p.now().Add(p.cfg.Cooldown).UnixNano())
}

// CoolingDown reports whether the policy is inside an active cooldown window.
func (p *Policy) CoolingDown() bool {
	return p.now().UnixNano() < p.cooldownUntil.Load()
}

// shouldTrip classifies failures that arm the cooldown: timeouts and the
// 429/503/5xx upstream status class. Other failures (bad request, auth) fall
// back locally without suppressing future attempts.
func shouldTrip(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *remote.StatusError
	if errors.As(err, &se) {
		return se.Code == 429 || se.Code >= 500
	}
	return false
}
