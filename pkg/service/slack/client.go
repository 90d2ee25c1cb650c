package slack

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
	"github.com/slack-go/slack"
)

const (
	// DefaultTimeout bounds every Slack API call
	DefaultTimeout = 10 * time.Second
)

// client implements Service interface
type client struct {
	// bot posts messages and reads history. It is also the fallback
	// credential for group membership listing.
	bot *slack.Client
	// user is the broader-scoped credential used for group membership. nil
	// when no user token is configured.
	user *slack.Client
}

type options struct {
	userToken  string
	httpClient *http.Client
	apiURL     string
}

// Option is a functional option for client configuration
type Option func(*options)

// WithUserToken sets the elevated credential used to list user group members
func WithUserToken(token string) Option {
	return func(o *options) {
		o.userToken = token
	}
}

// WithHTTPClient replaces the HTTP client used for API calls
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithAPIURL points the client to another Slack API endpoint. The URL must end with a slash.
func WithAPIURL(url string) Option {
	return func(o *options) {
		o.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token
func New(botToken string, opts ...Option) (Service, error) {
	if botToken == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = cleanhttp.DefaultPooledClient()
		o.httpClient.Timeout = DefaultTimeout
	}

	build := func(token string) *slack.Client {
		slackOpts := []slack.Option{slack.OptionHTTPClient(o.httpClient)}
		if o.apiURL != "" {
			slackOpts = append(slackOpts, slack.OptionAPIURL(o.apiURL))
		}
		return slack.New(token, slackOpts...)
	}

	c := &client{bot: build(botToken)}
	if o.userToken != "" {
		c.user = build(o.userToken)
	}

	return c, nil
}

// ListHistory retrieves up to limit recent messages of a channel, newest first
func (c *client) ListHistory(ctx context.Context, channelID string, limit int) ([]*model.Message, error) {
	var result []*model.Message
	var cursor string

	for len(result) < limit {
		resp, err := c.bot.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Limit:     min(limit-len(result), maxHistoryPageSize),
			Cursor:    cursor,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get conversation history",
				goerr.V("channel_id", channelID),
				goerr.V("error_code", errorCode(err)),
			)
		}

		for i := range resp.Messages {
			result = append(result, toMessage(&resp.Messages[i]))
		}

		cursor = resp.ResponseMetaData.NextCursor
		if !resp.HasMore || cursor == "" {
			break
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListReplies retrieves the messages of a thread, root first
func (c *client) ListReplies(ctx context.Context, channelID, threadTS string, limit int) ([]*model.Message, error) {
	var result []*model.Message
	var cursor string

	for len(result) < limit {
		msgs, hasMore, nextCursor, err := c.bot.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
			ChannelID: channelID,
			Timestamp: threadTS,
			Limit:     min(limit-len(result), maxRepliesPageSize),
			Cursor:    cursor,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get conversation replies",
				goerr.V("channel_id", channelID),
				goerr.V("thread_ts", threadTS),
				goerr.V("error_code", errorCode(err)),
			)
		}

		for i := range msgs {
			result = append(result, toMessage(&msgs[i]))
		}

		if !hasMore || nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// PostThreadReply posts a plain text reply into a thread without unfurling links or media
func (c *client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.bot.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message",
			goerr.V("channel_id", channelID),
			goerr.V("thread_ts", threadTS),
			goerr.V("error_code", errorCode(err)),
		)
	}
	return ts, nil
}

// ListUsers retrieves all non-deleted, non-bot users in the workspace
func (c *client) ListUsers(ctx context.Context) ([]*model.Identity, error) {
	users, err := c.bot.GetUsersContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users", goerr.V("error_code", errorCode(err)))
	}

	result := make([]*model.Identity, 0, len(users))
	for i := range users {
		u := &users[i]
		// Skip deleted users and bots
		if u.Deleted || u.IsBot {
			continue
		}

		result = append(result, &model.Identity{
			ID:    model.UserID(u.ID),
			Email: u.Profile.Email,
			Name:  displayName(u),
		})
	}

	return result, nil
}

// ListGroupMembers retrieves the members of a user group. The user token is
// tried first. On an authorization failure the bot token is used instead.
func (c *client) ListGroupMembers(ctx context.Context, groupID string) ([]model.UserID, error) {
	logger := logging.From(ctx)

	if c.user != nil {
		ids, err := c.user.GetUserGroupMembersContext(ctx, groupID)
		if err == nil {
			return uniqueUserIDs(ids), nil
		}
		if !IsAuthError(err) {
			return nil, goerr.Wrap(err, "failed to list user group members",
				goerr.V("group_id", groupID),
				goerr.V("error_code", errorCode(err)),
			)
		}

		logger.Warn("User token was rejected for group membership, falling back to bot token",
			"group_id", groupID,
			"error_code", errorCode(err),
		)
	} else {
		logger.Warn("No user token configured, listing group membership with bot token", "group_id", groupID)
	}

	ids, err := c.bot.GetUserGroupMembersContext(ctx, groupID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list user group members with fallback credential",
			goerr.V("group_id", groupID),
			goerr.V("error_code", errorCode(err)),
		)
	}
	return uniqueUserIDs(ids), nil
}

func toMessage(m *slack.Message) *model.Message {
	msg := &model.Message{
		Timestamp: m.Timestamp,
		ThreadTS:  m.ThreadTimestamp,
		UserID:    model.UserID(m.User),
		BotID:     m.BotID,
		SubType:   m.SubType,
		Text:      m.Text,
	}
	if postedAt, err := model.ParseTimestamp(m.Timestamp); err == nil {
		msg.PostedAt = postedAt
	}
	return msg
}

func displayName(u *slack.User) string {
	switch {
	case u.RealName != "":
		return u.RealName
	case u.Profile.RealName != "":
		return u.Profile.RealName
	default:
		return u.Profile.DisplayName
	}
}

func uniqueUserIDs(ids []string) []model.UserID {
	seen := make(map[string]struct{}, len(ids))
	result := make([]model.UserID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, model.UserID(id))
	}
	return result
}
