package slack

import (
	"github.com/secmon-lab/nudger/pkg/domain/interfaces"
)

// Service provides the Slack operations needed by a reminder run
type Service interface {
	interfaces.ChatService
	interfaces.GroupDirectory
}

const (
	// maxHistoryPageSize is the largest page conversations.history accepts
	maxHistoryPageSize = 999
	// maxRepliesPageSize is the largest page conversations.replies accepts
	maxRepliesPageSize = 999
)
