package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/interfaces"
	"github.com/secmon-lab/nudger/pkg/domain/model/config"
	"github.com/secmon-lab/nudger/pkg/utils/ratelimit"
)

type UseCases struct {
	chat    interfaces.ChatService
	groups  interfaces.GroupDirectory
	leave   interfaces.LeaveDirectory
	holiday *HolidayOracle
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error

	Reminder *ReminderUseCase
}

type Option func(*UseCases)

// WithLeaveDirectory enables leave-aware filtering of the gap
func WithLeaveDirectory(leave interfaces.LeaveDirectory) Option {
	return func(uc *UseCases) {
		uc.leave = leave
	}
}

// WithHolidayOracle enables skipping runs on non-working days
func WithHolidayOracle(oracle *HolidayOracle) Option {
	return func(uc *UseCases) {
		uc.holiday = oracle
	}
}

// WithNow replaces the clock that decides "today"
func WithNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithSleep replaces the function used for pacing reminder posts
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(uc *UseCases) {
		uc.sleep = sleep
	}
}

func New(chat interfaces.ChatService, groups interfaces.GroupDirectory, cfg config.Reminder, opts ...Option) *UseCases {
	uc := &UseCases{
		chat:   chat,
		groups: groups,
		now:    time.Now,
		sleep:  ratelimit.Sleep,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Reminder = NewReminderUseCase(uc, cfg.WithDefaults())

	return uc
}
