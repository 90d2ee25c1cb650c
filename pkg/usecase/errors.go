package usecase

// Context keys for error values
const (
	ChannelIDKey = "channel_id"
	GroupIDKey   = "group_id"
	ThreadTSKey  = "thread_ts"
)
