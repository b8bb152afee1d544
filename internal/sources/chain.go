package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Attempt records one adapter invocation inside a chain execution.
type Attempt struct {
	Source   string        `json:"source"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	Skipped  bool          `json:"skipped"`
}

// Result is the outcome of a chain execution: the winning payload plus the
// trail of attempts that led to it.
type Result struct {
	Payload  *Payload
	Attempts []Attempt
}

// Chain executes adapters in priority order until one succeeds. The last
// adapter in a well-formed chain is a static one that cannot fail, so
// callers normally never see an error.
type Chain struct {
	capability Capability
	adapters   []Adapter
	logger     *logrus.Logger
}

// NewChain builds a chain over the given adapters. At least one adapter is
// required.
func NewChain(capability Capability, logger *logrus.Logger, adapters ...Adapter) (*Chain, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("chain %s: no adapters", capability)
	}
	return &Chain{
		capability: capability,
		adapters:   adapters,
		logger:     logger,
	}, nil
}

// Capability returns the kind of data this chain produces.
func (c *Chain) Capability() Capability { return c.capability }

// Execute walks the chain in order. Each adapter gets its own deadline; a
// transient failure (timeout, malformed response, upstream error, missing
// configuration) moves execution to the next adapter. The first success wins
// and no later adapter is consulted.
func (c *Chain) Execute(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Attempts: make([]Attempt, 0, len(c.adapters))}

	for _, adapter := range c.adapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		payload, err := c.fetchOne(ctx, adapter, req)
		elapsed := time.Since(start)

		if err == nil {
			res.Attempts = append(res.Attempts, Attempt{Source: adapter.Name(), Duration: elapsed})
			res.Payload = payload
			if len(res.Attempts) > 1 {
				c.logger.WithFields(logrus.Fields{
					"capability": c.capability,
					"source":     adapter.Name(),
					"attempts":   len(res.Attempts),
				}).Info("Fallback source served request")
			}
			return res, nil
		}

		if errors.Is(err, ErrNotConfigured) {
			res.Attempts = append(res.Attempts, Attempt{Source: adapter.Name(), Duration: elapsed, Err: err, Skipped: true})
			continue
		}
		if !IsTransient(err) {
			return nil, err
		}

		res.Attempts = append(res.Attempts, Attempt{Source: adapter.Name(), Duration: elapsed, Err: err})
		c.logger.WithFields(logrus.Fields{
			"capability": c.capability,
			"source":     adapter.Name(),
			"duration":   elapsed,
		}).WithError(err).Warn("Source failed, trying next")
	}

	// Reachable only when a chain was assembled without a static terminal
	// adapter.
	c.logger.WithField("capability", c.capability).Error("Every source in chain failed")
	return nil, fmt.Errorf("chain %s: %w", c.capability, ErrExhausted)
}

// fetchOne runs a single adapter under its own timeout. The fetch executes in
// a goroutine so that a response arriving after the deadline is discarded
// rather than blocking the chain.
func (c *Chain) fetchOne(ctx context.Context, adapter Adapter, req Request) (*Payload, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, adapter.Timeout())
	defer cancel()

	type outcome struct {
		payload *Payload
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		p, err := adapter.Fetch(attemptCtx, req)
		done <- outcome{payload: p, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%s: %w", adapter.Name(), ErrTimeout)
			}
			return nil, out.err
		}
		return out.payload, nil
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%s: %w", adapter.Name(), ErrTimeout)
		}
		return nil, ctx.Err()
	}
}
