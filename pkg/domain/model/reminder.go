package model

import (
	"log/slog"
	"time"
)

// DefaultBatchSize is the number of mentions carried by one reminder message
const DefaultBatchSize = 20

// SplitBatches partitions ids into consecutive chunks of at most size ids,
// preserving order
func SplitBatches(ids []UserID, size int) [][]UserID {
	if size < 1 {
		size = DefaultBatchSize
	}

	batches := make([][]UserID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// SkipReason explains why a run finished without sending reminders
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipHoliday    SkipReason = "holiday"
	SkipNoPrompt   SkipReason = "no_prompt"
	SkipEmptyGroup SkipReason = "empty_group"
)

// Exclusion records why an identity was removed from the gap
type Exclusion struct {
	UserID    UserID
	Reason    string
	LeaveType string
}

// RunSummary describes the outcome of one reminder run
type RunSummary struct {
	Date           time.Time
	Skipped        SkipReason
	HolidayLabel   string
	PromptTS       string
	MemberCount    int
	ResponderCount int
	RawGap         []UserID
	Excluded       []Exclusion
	Unverifiable   []UserID
	Reminded       []UserID
	AllClear       bool
	BatchesPosted  int
	BatchesFailed  int
	DryRun         bool
}

// LogValue renders the summary as a structured log group
func (x *RunSummary) LogValue() slog.Value {
	if x == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("date", x.Date.Format(time.DateOnly)),
		slog.String("skipped", string(x.Skipped)),
		slog.String("holiday_label", x.HolidayLabel),
		slog.String("prompt_ts", x.PromptTS),
		slog.Int("members", x.MemberCount),
		slog.Int("responders", x.ResponderCount),
		slog.Any("raw_gap", x.RawGap),
		slog.Any("excluded", x.Excluded),
		slog.Any("unverifiable", x.Unverifiable),
		slog.Any("reminded", x.Reminded),
		slog.Bool("all_clear", x.AllClear),
		slog.Int("batches_posted", x.BatchesPosted),
		slog.Int("batches_failed", x.BatchesFailed),
		slog.Bool("dry_run", x.DryRun),
	)
}
