package ratelimit

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// Limiter paces calls to an upstream service so that no more than a soft
// threshold of calls are issued per window. Once the threshold is spent,
// Wait sleeps until enough of the window has elapsed to issue the next call.
type Limiter struct {
	lim   *rate.Limiter
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option is a functional option for Limiter configuration
type Option func(*Limiter)

// WithNow replaces the clock used for reservations
func WithNow(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithSleep replaces the function used to wait out a delay
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Limiter) {
		l.sleep = sleep
	}
}

// New creates a Limiter allowing threshold calls per window
func New(threshold int, window time.Duration, opts ...Option) *Limiter {
	if threshold < 1 {
		threshold = 1
	}

	l := &Limiter{
		lim:   rate.NewLimiter(rate.Every(window/time.Duration(threshold)), threshold),
		now:   time.Now,
		sleep: Sleep,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until one more call may be issued
func (l *Limiter) Wait(ctx context.Context) error {
	now := l.now()
	r := l.lim.ReserveN(now, 1)
	if !r.OK() {
		return goerr.New("rate limiter cannot grant a reservation")
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	logging.From(ctx).Info("Rate limit threshold reached, sleeping", "delay", delay.String())
	if err := l.sleep(ctx, delay); err != nil {
		r.CancelAt(now)
		return goerr.Wrap(err, "interrupted while waiting for rate limit", goerr.V("delay", delay))
	}
	return nil
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
