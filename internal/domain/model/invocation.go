package model

import "time"

// Invocation is one chat command waiting to be executed.
// Content holds the argument text with the command prefix already stripped.
type Invocation struct {
	ID         string    // unique id, used for logging and dedupe
	GuildID    string    // empty for direct messages
	ChannelID  string    // where the reply goes
	MessageID  string    // message to reply to
	AuthorID   string    // only this user may drive the reply's pager
	Content    string    // e.g. "hatch rain core, ghulture"
	ReceivedAt time.Time // gateway receive time
}
