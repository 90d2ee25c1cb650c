package model

import (
	"strings"
	"time"
)

// DefaultNonWorkingLeaveTypes are the leave-type labels that mean a person is
// not working on the day
var DefaultNonWorkingLeaveTypes = []string{"Holiday", "Sick Leave", "Day off"}

// LeaveUser is an entry of the leave calendar's user directory
type LeaveUser struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// LeaveRecord is an absence entry from the leave calendar
type LeaveRecord struct {
	UserID    string // Leave calendar user id, not the chat platform id
	LeaveType string
	Status    string
	Start     time.Time // Zero when the payload carries no usable date
	End       time.Time
}

var inactiveLeaveStatuses = []string{"declined", "cancelled", "canceled", "rejected"}

// Active reports whether the record still stands. Records without a status
// are treated as active.
func (x LeaveRecord) Active() bool {
	status := strings.ToLower(strings.TrimSpace(x.Status))
	for _, s := range inactiveLeaveStatuses {
		if status == s {
			return false
		}
	}
	return true
}

// Covers reports whether the record spans date. Records whose range is
// unknown are assumed to cover the queried date.
func (x LeaveRecord) Covers(date time.Time) bool {
	if x.Start.IsZero() || x.End.IsZero() {
		return true
	}
	day := dayNumber(date)
	return day >= dayNumber(x.Start) && day <= dayNumber(x.End)
}

// dayNumber encodes the calendar date of t as yyyymmdd so that dates in
// different locations compare by their wall-clock date
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// MatchMethod tells how a chat identity was tied to a leave calendar user
type MatchMethod string

const (
	MatchNone  MatchMethod = ""
	MatchEmail MatchMethod = "email"
	MatchName  MatchMethod = "name"
)

// Availability is the leave calendar's view of one identity on one day
type Availability struct {
	Found       bool
	MatchedBy   MatchMethod
	LeaveUserID string
	LeaveTypes  []string // Labels of the active absence records covering the day
}

// OnLeave reports whether any absence record covers the day
func (x *Availability) OnLeave() bool {
	return len(x.LeaveTypes) > 0
}

// IsNonWorkingLeave reports whether label contains one of the non-working
// labels, case-insensitively
func IsNonWorkingLeave(label string, nonWorking []string) bool {
	l := strings.ToLower(label)
	for _, nw := range nonWorking {
		nw = strings.ToLower(strings.TrimSpace(nw))
		if nw != "" && strings.Contains(l, nw) {
			return true
		}
	}
	return false
}

// DateOf truncates t to midnight in t's location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar date in loc
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
