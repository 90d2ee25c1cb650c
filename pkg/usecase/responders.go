package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// ListResponders returns the distinct authors of the replies in a thread, in
// first-seen order. The root message is not a reply.
func (uc *ReminderUseCase) ListResponders(ctx context.Context, threadTS string) ([]model.UserID, error) {
	replies, err := uc.chat.ListReplies(ctx, uc.cfg.ChannelID, threadTS, uc.cfg.RepliesLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read thread replies",
			goerr.V(ChannelIDKey, uc.cfg.ChannelID),
			goerr.V(ThreadTSKey, threadTS))
	}
	if len(replies) == 0 {
		return nil, nil
	}

	seen := make(map[model.UserID]struct{})
	var responders []model.UserID
	for _, r := range replies[1:] {
		if r == nil || r.UserID == "" {
			continue
		}
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		responders = append(responders, r.UserID)
	}
	return responders, nil
}
