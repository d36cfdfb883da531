package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Pinger is the connectivity probe surface; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// KeepaliveOptions groups dependencies for KeepaliveService.
type KeepaliveOptions struct {
	DB       Pinger
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// KeepaliveService periodically probes the database so managed providers do
// not pause it for inactivity. Outcomes are logged only: no retry, no
// alerting. Not part of the authentication core.
type KeepaliveService struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewKeepaliveService constructs a KeepaliveService.
func NewKeepaliveService(opts KeepaliveOptions) (*KeepaliveService, error) {
	if opts.DB == nil {
		return nil, errors.New("database connection is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 72 * time.Hour
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &KeepaliveService{
		db:       opts.DB,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "keepalive"),
	}, nil
}

// Run probes once immediately and then on every interval tick until the
// context is canceled. Always returns ctx.Err().
func (k *KeepaliveService) Run(ctx context.Context) error {
	k.probe(ctx)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			k.probe(ctx)
		}
	}
}

// Probe runs a single bounded connectivity check and logs the outcome.
func (k *KeepaliveService) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	start := time.Now()
	if err := k.db.PingContext(probeCtx); err != nil {
		k.logger.WarnContext(ctx, "database keepalive probe failed", "error", err, "elapsed", time.Since(start))
		return
	}
	k.logger.InfoContext(ctx, "database keepalive probe ok", "elapsed", time.Since(start))
}
