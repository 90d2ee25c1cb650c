package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/utils/ratelimit"
)

type fakeTime struct {
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) Sleep(_ context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d)
	return nil
}

func TestLimiter(t *testing.T) {
	ctx := context.Background()
	ft := &fakeTime{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	lim := ratelimit.New(3, time.Minute, ratelimit.WithNow(ft.Now), ratelimit.WithSleep(ft.Sleep))

	t.Run("calls under threshold do not sleep", func(t *testing.T) {
		for range 3 {
			gt.NoError(t, lim.Wait(ctx)).Required()
		}
		gt.Array(t, ft.sleeps).Length(0)
	})

	t.Run("call over threshold sleeps for one refill interval", func(t *testing.T) {
		gt.NoError(t, lim.Wait(ctx)).Required()
		gt.Array(t, ft.sleeps).Length(1).Required()
		gt.Value(t, ft.sleeps[0]).Equal(20 * time.Second)
	})

	t.Run("full window restores the threshold", func(t *testing.T) {
		ft.sleeps = nil
		ft.now = ft.now.Add(time.Minute)
		for range 3 {
			gt.NoError(t, lim.Wait(ctx)).Required()
		}
		gt.Array(t, ft.sleeps).Length(0)
	})
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ratelimit.Sleep(ctx, time.Hour)
	gt.Value(t, err).Equal(context.Canceled)
}

func TestSleepZero(t *testing.T) {
	gt.NoError(t, ratelimit.Sleep(context.Background(), 0))
}
