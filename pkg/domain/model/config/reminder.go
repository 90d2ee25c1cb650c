package config

import (
	"time"

	"github.com/secmon-lab/nudger/pkg/domain/model"
)

const (
	// DefaultHistoryLimit is how many recent channel messages are scanned for the prompt
	DefaultHistoryLimit = 100
	// DefaultRepliesLimit bounds the thread replies read per run
	DefaultRepliesLimit = 1000
	// DefaultPace is the delay between successive reminder posts
	DefaultPace = time.Second

	DefaultReminderText = "Friendly reminder to post your update in this thread :pray:"
	DefaultAllClearText = "Everyone has posted their update today, thank you! :tada:"
)

// DefaultKeywords identify the daily prompt when none are configured
var DefaultKeywords = []string{"stand-up", "standup"}

// Reminder holds the settings of one reminder run
type Reminder struct {
	ChannelID string
	GroupID   string

	// PromptAuthorID is the user or bot id of the workflow posting the prompt.
	// When empty, any automated message that is not a generic bot message qualifies.
	PromptAuthorID string
	Keywords       []string

	ReminderText string
	AllClearText string

	HistoryLimit int
	RepliesLimit int

	NonWorkingLeaveTypes []string

	BatchSize int
	Pace      time.Duration
	Location  *time.Location
	DryRun    bool
}

// WithDefaults returns a copy of r with unset fields filled by defaults
func (r Reminder) WithDefaults() Reminder {
	if len(r.Keywords) == 0 {
		r.Keywords = DefaultKeywords
	}
	if r.ReminderText == "" {
		r.ReminderText = DefaultReminderText
	}
	if r.AllClearText == "" {
		r.AllClearText = DefaultAllClearText
	}
	if r.HistoryLimit <= 0 {
		r.HistoryLimit = DefaultHistoryLimit
	}
	if r.RepliesLimit <= 0 {
		r.RepliesLimit = DefaultRepliesLimit
	}
	if len(r.NonWorkingLeaveTypes) == 0 {
		r.NonWorkingLeaveTypes = model.DefaultNonWorkingLeaveTypes
	}
	if r.BatchSize <= 0 {
		r.BatchSize = model.DefaultBatchSize
	}
	if r.Pace < 0 {
		r.Pace = 0
	}
	if r.Location == nil {
		r.Location = time.Local
	}
	return r
}
