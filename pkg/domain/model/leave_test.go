package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/domain/model"
)

func TestIsNonWorkingLeave(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Holiday", true},
		{"holiday", true},
		{"Bank Holiday", true},
		{"Sick Leave", true},
		{"SICK LEAVE (uncertified)", true},
		{"Day Off", true},
		{"Working remotely", false},
		{"In office", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			gt.Value(t, model.IsNonWorkingLeave(tt.label, model.DefaultNonWorkingLeaveTypes)).Equal(tt.want)
		})
	}

	t.Run("blank configured labels never match", func(t *testing.T) {
		gt.Value(t, model.IsNonWorkingLeave("anything", []string{"", "  "})).Equal(false)
	})
}

func TestLeaveRecordActive(t *testing.T) {
	gt.Value(t, model.LeaveRecord{Status: "Approved"}.Active()).Equal(true)
	gt.Value(t, model.LeaveRecord{}.Active()).Equal(true)
	gt.Value(t, model.LeaveRecord{Status: "Declined"}.Active()).Equal(false)
	gt.Value(t, model.LeaveRecord{Status: " cancelled "}.Active()).Equal(false)
}

func TestLeaveRecordCovers(t *testing.T) {
	day := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	gt.Value(t, model.LeaveRecord{}.Covers(day)).Equal(true)
	gt.Value(t, model.LeaveRecord{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}.Covers(day)).Equal(true)
	gt.Value(t, model.LeaveRecord{
		Start: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}.Covers(day)).Equal(false)
}

func TestSameDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	a := time.Date(2026, 3, 4, 23, 30, 0, 0, time.UTC)
	b := time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)

	gt.Value(t, model.SameDate(a, b, time.UTC)).Equal(false)
	gt.Value(t, model.SameDate(a, b, tokyo)).Equal(true)
}
