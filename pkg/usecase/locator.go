package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// FindTodaysPrompt scans the most recent channel messages, newest first, and
// returns the first one that was posted on the date of now by the workflow
// identity and mentions one of the keywords. It returns nil when there is no
// such message.
func (uc *ReminderUseCase) FindTodaysPrompt(ctx context.Context, now time.Time) (*model.Message, error) {
	messages, err := uc.chat.ListHistory(ctx, uc.cfg.ChannelID, uc.cfg.HistoryLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read channel history",
			goerr.V(ChannelIDKey, uc.cfg.ChannelID))
	}

	for _, msg := range messages {
		if msg == nil || msg.PostedAt.IsZero() {
			continue
		}
		if msg.ThreadTS != "" && msg.ThreadTS != msg.Timestamp {
			continue
		}
		if !model.SameDate(msg.PostedAt, now, uc.cfg.Location) {
			continue
		}
		if !uc.isPromptAuthor(msg) {
			continue
		}
		if !containsKeyword(msg.Text, uc.cfg.Keywords) {
			continue
		}
		return msg, nil
	}

	return nil, nil
}

func (uc *ReminderUseCase) isPromptAuthor(msg *model.Message) bool {
	if uc.cfg.PromptAuthorID != "" {
		return msg.AuthoredBy(uc.cfg.PromptAuthorID)
	}
	return msg.IsAutomated()
}

func containsKeyword(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
