package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/interfaces"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/cache"
	"github.com/secmon-lab/nudger/pkg/utils/errutil"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

// DefaultHolidayCacheTTL is how long verdicts and the remote calendar are reused
const DefaultHolidayCacheTTL = 24 * time.Hour

// HolidayOracle decides whether a date is a non-working day. The local
// ruleset is consulted first; when it reports a working day the remote feed
// is cross-checked and a holiday reported there wins. Failures of either
// source never block a run: the date is then treated as a working day.
type HolidayOracle struct {
	local        interfaces.HolidayCalendar
	feed         interfaces.HolidayFeed
	jurisdiction string
	now          func() time.Time
	location     *time.Location

	verdicts *cache.Cache[string, model.HolidayVerdict]
	events   *cache.Cache[string, []model.HolidayEvent]
}

type HolidayOption func(*HolidayOracle)

// WithHolidayNow replaces the clock used by Today and by cache expiry
func WithHolidayNow(now func() time.Time) HolidayOption {
	return func(o *HolidayOracle) {
		o.now = now
	}
}

// WithHolidayLocation sets the location in which "today" is evaluated
func WithHolidayLocation(loc *time.Location) HolidayOption {
	return func(o *HolidayOracle) {
		o.location = loc
	}
}

// NewHolidayOracle creates a HolidayOracle. Either source may be nil.
func NewHolidayOracle(local interfaces.HolidayCalendar, feed interfaces.HolidayFeed, jurisdiction string, opts ...HolidayOption) *HolidayOracle {
	o := &HolidayOracle{
		local:        local,
		feed:         feed,
		jurisdiction: jurisdiction,
		now:          time.Now,
		location:     time.Local,
	}
	for _, opt := range opts {
		opt(o)
	}

	clock := cache.WithNow(func() time.Time { return o.now() })
	o.verdicts = cache.New[string, model.HolidayVerdict](DefaultHolidayCacheTTL, clock)
	o.events = cache.New[string, []model.HolidayEvent](DefaultHolidayCacheTTL, clock)
	return o
}

// Today returns the verdict for the current date
func (o *HolidayOracle) Today(ctx context.Context) model.HolidayVerdict {
	return o.Check(ctx, o.now().In(o.location))
}

// Check returns the verdict for the calendar date of date
func (o *HolidayOracle) Check(ctx context.Context, date time.Time) model.HolidayVerdict {
	key := date.Format(time.DateOnly)
	if v, ok := o.verdicts.Get(key); ok {
		return v
	}

	logger := logging.From(ctx)
	failed := false

	if o.local != nil {
		holiday, name, err := o.local.IsHoliday(ctx, date)
		switch {
		case err != nil:
			failed = true
			errutil.Warn(ctx, err, "local holiday check failed")
		case holiday:
			v := model.HolidayVerdict{NonWorking: true, Label: name, Source: model.HolidaySourceLocal}
			o.verdicts.Set(key, v)
			return v
		}
	}

	if o.feed != nil {
		events, err := o.calendar(ctx)
		if err != nil {
			failed = true
			errutil.Warn(ctx, err, "remote holiday check failed")
		}
		for _, e := range events {
			if e.Date.Format(time.DateOnly) == key {
				v := model.HolidayVerdict{NonWorking: true, Label: e.Title, Source: model.HolidaySourceRemote}
				o.verdicts.Set(key, v)
				return v
			}
		}
	}

	v := model.HolidayVerdict{}
	if failed {
		logger.Info("Holiday check incomplete, assuming a working day", "date", key)
		return v
	}
	o.verdicts.Set(key, v)
	return v
}

func (o *HolidayOracle) calendar(ctx context.Context) ([]model.HolidayEvent, error) {
	if events, ok := o.events.Get(o.jurisdiction); ok {
		return events, nil
	}

	events, err := o.feed.FetchCalendar(ctx, o.jurisdiction)
	if err != nil {
		return nil, err
	}
	o.events.Set(o.jurisdiction, events)

	logging.From(ctx).Debug("Loaded remote holiday calendar",
		"jurisdiction", o.jurisdiction,
		"events", len(events),
	)
	return events, nil
}
