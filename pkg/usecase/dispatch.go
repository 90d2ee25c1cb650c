package usecase

import (
	"context"
	"strings"

	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/errutil"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

// DispatchResult counts the messages posted by Dispatch
type DispatchResult struct {
	AllClear bool
	Posted   int
	Failed   int
}

// Dispatch posts the reminder into the thread. An empty gap gets a single
// all-clear message; otherwise the gap is mentioned in batches, paced apart.
// A failed post is logged and the remaining batches are still sent.
func (uc *ReminderUseCase) Dispatch(ctx context.Context, threadTS string, gap []model.UserID) *DispatchResult {
	result := &DispatchResult{}

	if len(gap) == 0 {
		result.AllClear = true
		uc.post(ctx, threadTS, uc.cfg.AllClearText, result)
		return result
	}

	batches := model.SplitBatches(gap, uc.cfg.BatchSize)
	for i, batch := range batches {
		if i > 0 && !uc.cfg.DryRun {
			if err := uc.sleep(ctx, uc.cfg.Pace); err != nil {
				errutil.Warn(ctx, err, "reminder dispatch interrupted")
				result.Failed += len(batches) - i
				return result
			}
		}
		uc.post(ctx, threadTS, reminderText(uc.cfg.ReminderText, batch), result)
	}

	return result
}

func (uc *ReminderUseCase) post(ctx context.Context, threadTS, text string, result *DispatchResult) {
	logger := logging.From(ctx)

	if uc.cfg.DryRun {
		logger.Info("Dry run, not posting", ThreadTSKey, threadTS, "text", text)
		result.Posted++
		return
	}

	ts, err := uc.chat.PostThreadReply(ctx, uc.cfg.ChannelID, threadTS, text)
	if err != nil {
		errutil.Warn(ctx, err, "failed to post reminder message")
		result.Failed++
		return
	}

	logger.Debug("Posted reminder message", ThreadTSKey, threadTS, "ts", ts)
	result.Posted++
}

// reminderText builds a message of text followed by one mention per id
func reminderText(text string, ids []model.UserID) string {
	var b strings.Builder
	b.WriteString(text)
	for _, id := range ids {
		b.WriteString(" <@")
		b.WriteString(id.String())
		b.WriteString(">")
	}
	return b.String()
}
