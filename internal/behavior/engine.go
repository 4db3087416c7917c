package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// Store persists behavior profiles keyed by visitor ID. Read reports found =
// false for a visitor with no usable profile; implementations treat corrupt
// records the same way rather than failing. Writes are last-write-wins with
// no cross-visitor or cross-tab coordination.
type Store interface {
	Read(ctx context.Context, visitorID string) (profile domain.BehaviorProfile, found bool, err error)
	Write(ctx context.Context, visitorID string, profile domain.BehaviorProfile) error
}

// Engine drives the read/merge/write cycle over a Store. Every mutation is
// written through immediately; there is no batching.
type Engine struct {
	store        Store
	now          func() time.Time
	tickInterval time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTickInterval overrides the one-second dwell tick, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		now:          time.Now,
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PageView records one fresh page load for a visitor and returns the updated
// profile. IsFirstVisit is recomputed from storage on every load: true only
// when no profile existed before this call.
func (e *Engine) PageView(ctx context.Context, visitorID, path string) (domain.BehaviorProfile, error) {
	p, found, err := e.store.Read(ctx, visitorID)
	if err != nil {
		return domain.BehaviorProfile{}, fmt.Errorf("read profile: %w", err)
	}
	if !found {
		p = domain.BehaviorProfile{}
	}
	p.IsFirstVisit = !found

	p = Reduce(p, PageViewed{Path: path, At: e.now()})

	if err := e.store.Write(ctx, visitorID, p); err != nil {
		return domain.BehaviorProfile{}, fmt.Errorf("write profile: %w", err)
	}
	return p, nil
}

// Tick adds one second of dwell time and writes the profile through, so a
// refresh resumes from the last saved value instead of resetting to zero.
func (e *Engine) Tick(ctx context.Context, visitorID string) (domain.BehaviorProfile, error) {
	p, found, err := e.store.Read(ctx, visitorID)
	if err != nil {
		return domain.BehaviorProfile{}, fmt.Errorf("read profile: %w", err)
	}
	if !found {
		p = domain.BehaviorProfile{IsFirstVisit: true}
	}

	p = Reduce(p, TickElapsed{})

	if err := e.store.Write(ctx, visitorID, p); err != nil {
		return domain.BehaviorProfile{}, fmt.Errorf("write profile: %w", err)
	}
	return p, nil
}

// CTA returns the call-to-action copy for a visitor without mutating the
// stored profile. An unseen visitor gets the first-visit copy.
func (e *Engine) CTA(ctx context.Context, visitorID string) (string, error) {
	p, found, err := e.store.Read(ctx, visitorID)
	if err != nil {
		return "", fmt.Errorf("read profile: %w", err)
	}
	if !found {
		p = domain.BehaviorProfile{IsFirstVisit: true}
	}
	return SelectCTA(p), nil
}

// Run ticks the visitor's dwell time once per interval until ctx is done.
// It mirrors the browser's timer loop for embedders that keep a session open
// server-side; the HTTP surface instead receives heartbeats per tick.
func (e *Engine) Run(ctx context.Context, visitorID string) error {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := e.Tick(ctx, visitorID); err != nil {
				return err
			}
		}
	}
}
