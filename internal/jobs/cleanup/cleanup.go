package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type listingExpirer interface {
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job expires stale listings and trims the activity log. One Run is one
// sweep; Start repeats it on the configured interval until the context ends.
type Job struct {
	listings  listingExpirer
	activity  activityPurger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(listings listingExpirer, activity activityPurger, interval, retention time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		listings:  listings,
		activity:  activity,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.listings != nil {
		expired, err := j.listings.ExpireBefore(ctx, j.now())
		if err != nil {
			return fmt.Errorf("expire stale listings: %w", err)
		}
		if expired > 0 {
			j.logger.Info("expired stale job listings", zap.Int64("count", expired))
		}
	}

	if j.activity != nil {
		cutoff := j.now().Add(-j.retention)
		purged, err := j.activity.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purge activity log: %w", err)
		}
		if purged > 0 {
			j.logger.Info("purged old activity entries", zap.Int64("count", purged))
		}
	}

	return nil
}

func (j *Job) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("cleanup sweep failed", zap.Error(err))
			}
		}
	}
}
