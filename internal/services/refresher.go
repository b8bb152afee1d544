package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/sources"
)

// Refresher periodically re-runs the schedule and news chains for a fixed
// set of teams so their structured-API caches stay warm. When a cache is
// attached, each cycle flushes it first so every entry repopulates from live
// sources.
type Refresher struct {
	cron     *cron.Cron
	chains   *ChainSet
	cache    *CacheService
	teams    []string
	interval time.Duration
	logger   *logrus.Logger
}

func NewRefresher(chains *ChainSet, cache *CacheService, teams []string, interval time.Duration, logger *logrus.Logger) *Refresher {
	return &Refresher{
		cron:     cron.New(),
		chains:   chains,
		cache:    cache,
		teams:    teams,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the refresh job and runs one warm-up pass in the
// background.
func (r *Refresher) Start() error {
	if len(r.teams) == 0 {
		r.logger.Info("No warm teams configured, refresher idle")
		return nil
	}

	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(spec, r.refreshAll); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	r.cron.Start()

	go r.refreshAll()
	r.logger.WithFields(logrus.Fields{
		"teams":    r.teams,
		"interval": r.interval,
	}).Info("Cache refresher started")
	return nil
}

// Stop halts the cron scheduler and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) refreshAll() {
	if r.cache != nil {
		if err := r.cache.Flush(); err != nil {
			r.logger.WithError(err).Warn("Cache flush failed, refreshing over stale entries")
		}
	}

	for _, team := range r.teams {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		if _, err := r.chains.Schedule.Execute(ctx, sources.Request{Team: team, From: time.Now().UTC()}); err != nil {
			r.logger.WithField("team", team).WithError(err).Warn("Schedule refresh failed")
		}
		if _, err := r.chains.News.Execute(ctx, sources.Request{Team: team}); err != nil {
			r.logger.WithField("team", team).WithError(err).Warn("News refresh failed")
		}

		cancel()
	}
}
