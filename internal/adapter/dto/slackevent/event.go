// Package slackevent holds the request shapes of the Slack Events API
// envelope the bot subscribes to.
package slackevent

// Envelope types Slack delivers to the events endpoint.
const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"
)

// InnerEvent is the workspace event wrapped inside an event_callback
// envelope. Only message-shaped fields are read.
type InnerEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Text    string `json:"text"`
	User    string `json:"user"`
	Channel string `json:"channel"`
	BotID   string `json:"bot_id"`
}

// Envelope is the outer Events API payload.
type Envelope struct {
	Type      string     `json:"type" validate:"required"`
	Token     string     `json:"token"`
	Challenge string     `json:"challenge"`
	TeamID    string     `json:"team_id"`
	EventID   string     `json:"event_id"`
	EventTime int64      `json:"event_time"`
	Event     InnerEvent `json:"event"`
}

// FromBot reports whether the inner event was produced by a bot; those are
// never dispatched, to keep the bot from replying to itself.
func (e *Envelope) FromBot() bool {
	return e.Event.BotID != "" || e.Event.Subtype == "bot_message"
}
