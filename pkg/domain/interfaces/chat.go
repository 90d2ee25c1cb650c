package interfaces

import (
	"context"

	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// ChatService is the subset of the chat platform used by a reminder run
type ChatService interface {
	// ListHistory returns at most limit recent messages of a channel, newest first
	ListHistory(ctx context.Context, channelID string, limit int) ([]*model.Message, error)

	// ListReplies returns the messages of a thread, root first, up to limit entries
	ListReplies(ctx context.Context, channelID, threadTS string, limit int) ([]*model.Message, error)

	// PostThreadReply posts text into a thread with link and media previews
	// suppressed, and returns the new message timestamp
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error)

	// ListUsers returns every active member of the workspace
	ListUsers(ctx context.Context) ([]*model.Identity, error)
}

// GroupDirectory resolves the members of a user group
type GroupDirectory interface {
	ListGroupMembers(ctx context.Context, groupID string) ([]model.UserID, error)
}
