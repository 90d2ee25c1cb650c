package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// HolidayCalendar evaluates a local holiday ruleset
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, string, error)
}

// HolidayFeed fetches an authoritative holiday calendar from a remote source
type HolidayFeed interface {
	FetchCalendar(ctx context.Context, jurisdiction string) ([]model.HolidayEvent, error)
}
