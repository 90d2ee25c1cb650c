package holiday

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/gb"
)

// Jurisdictions recognized by both the local ruleset and the remote feed
const (
	EnglandAndWales = "england-and-wales"
	Scotland        = "scotland"
	NorthernIreland = "northern-ireland"

	DefaultJurisdiction = EnglandAndWales
)

// Substitute day rules used by GOV.UK: a weekend date moves to the next
// free weekday.
var (
	weekendAlt = []cal.AltDay{
		{Day: time.Saturday, Offset: 2},
		{Day: time.Sunday, Offset: 1},
	}
	// Follows New Year's Day, so a clash on Monday pushes it to Tuesday
	followingAlt = []cal.AltDay{
		{Day: time.Saturday, Offset: 2},
		{Day: time.Sunday, Offset: 2},
		{Day: time.Monday, Offset: 1},
	}
)

var (
	secondJanuary = &cal.Holiday{
		Name:     "2nd January",
		Type:     cal.ObservanceBank,
		Month:    time.January,
		Day:      2,
		Observed: followingAlt,
		Func:     cal.CalcDayOfMonth,
	}
	stAndrewsDay = &cal.Holiday{
		Name:     "St Andrew's Day",
		Type:     cal.ObservanceBank,
		Month:    time.November,
		Day:      30,
		Observed: weekendAlt,
		Func:     cal.CalcDayOfMonth,
	}
	stPatricksDay = &cal.Holiday{
		Name:     "St Patrick's Day",
		Type:     cal.ObservanceBank,
		Month:    time.March,
		Day:      17,
		Observed: weekendAlt,
		Func:     cal.CalcDayOfMonth,
	}
	battleOfTheBoyne = &cal.Holiday{
		Name:     "Battle of the Boyne (Orangemen's Day)",
		Type:     cal.ObservanceBank,
		Month:    time.July,
		Day:      12,
		Observed: weekendAlt,
		Func:     cal.CalcDayOfMonth,
	}
)

// gb.Holidays is the England and Wales list. Scotland drops Easter Monday
// and moves the summer holiday to the start of August.
var rulesets = map[string][]*cal.Holiday{
	EnglandAndWales: gb.Holidays,
	Scotland: {
		gb.NewYear,
		secondJanuary,
		gb.GoodFriday,
		gb.EarlyMay,
		gb.VEDay,
		gb.CoronationDay,
		gb.SpringHoliday,
		gb.SpringHoliday2022,
		gb.PlatinumJubilee,
		gb.SummerHolidayScotland,
		stAndrewsDay,
		gb.ChristmasDay,
		gb.BoxingDay,
	},
	NorthernIreland: append([]*cal.Holiday{stPatricksDay, battleOfTheBoyne}, gb.Holidays...),
}

// Jurisdictions returns the supported jurisdiction names
func Jurisdictions() []string {
	return []string{EnglandAndWales, Scotland, NorthernIreland}
}

// Local answers holiday questions from a built-in ruleset. It implements
// interfaces.HolidayCalendar.
type Local struct {
	jurisdiction string
	calendar     *cal.BusinessCalendar
}

// NewLocal creates a Local calendar for jurisdiction
func NewLocal(jurisdiction string) (*Local, error) {
	holidays, ok := rulesets[jurisdiction]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownJurisdiction, "no local ruleset",
			goerr.V("jurisdiction", jurisdiction))
	}

	c := cal.NewBusinessCalendar()
	c.AddHoliday(holidays...)

	return &Local{
		jurisdiction: jurisdiction,
		calendar:     c,
	}, nil
}

// IsHoliday reports whether date is a public holiday, either on the day
// itself or as the observed substitute day, and its name
func (x *Local) IsHoliday(_ context.Context, date time.Time) (bool, string, error) {
	actual, observed, h := x.calendar.IsHoliday(date)
	if !actual && !observed {
		return false, "", nil
	}

	name := ""
	if h != nil {
		name = h.Name
	}
	return true, name, nil
}
