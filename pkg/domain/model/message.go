package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// genericBotSubType marks messages posted by plain bots and incoming webhooks
// rather than by workflows
const genericBotSubType = "bot_message"

// Message is a single chat message as returned by history and replies
type Message struct {
	Timestamp string // Platform message id, e.g. "1712048400.000200"
	ThreadTS  string
	UserID    UserID
	BotID     string
	SubType   string
	Text      string
	PostedAt  time.Time
}

// IsAutomated reports whether the message was posted by a workflow identity.
// Generic bot messages are excluded.
func (x *Message) IsAutomated() bool {
	return x.BotID != "" && x.SubType != genericBotSubType
}

// AuthoredBy reports whether authorID matches the message's user or bot id
func (x *Message) AuthoredBy(authorID string) bool {
	if authorID == "" {
		return false
	}
	return string(x.UserID) == authorID || x.BotID == authorID
}

// ParseTimestamp converts a platform timestamp ("seconds.micros") to time.Time
func ParseTimestamp(ts string) (time.Time, error) {
	sec, frac, _ := strings.Cut(ts, ".")
	s, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid message timestamp", goerr.V("ts", ts))
	}

	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		n, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return time.Time{}, goerr.Wrap(err, "invalid message timestamp fraction", goerr.V("ts", ts))
		}
		nsec = n
	}

	return time.Unix(s, nsec), nil
}
