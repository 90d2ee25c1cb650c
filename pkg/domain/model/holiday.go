package model

import "time"

// HolidaySource tells which data source produced a holiday verdict
type HolidaySource string

const (
	HolidaySourceNone   HolidaySource = ""
	HolidaySourceLocal  HolidaySource = "local"
	HolidaySourceRemote HolidaySource = "remote"
)

// HolidayVerdict is the outcome of the non-working day check
type HolidayVerdict struct {
	NonWorking bool
	Label      string
	Source     HolidaySource
}

// HolidayEvent is one entry of a remote holiday calendar
type HolidayEvent struct {
	Date  time.Time
	Title string
}
