package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tuananhdev/slack-assistant/errors"
	"github.com/tuananhdev/slack-assistant/internal/adapter/dto/slackevent"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/cache"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/internal/usecase/bot"
	"github.com/tuananhdev/slack-assistant/pkg/config"

	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/nlp"
)

// eventsAckReply is the fixed body every accepted events request gets;
// Slack only cares about the 200.
const eventsAckReply = "subscribed to events API"

// Slack retries undelivered events for an hour; remembering ids that long
// covers the whole retry window.
const eventDedupTTL = time.Hour

// IntentDetector parses message text into an intent and parameters.
type IntentDetector interface {
	DetectIntent(ctx context.Context, text, sessionID string) (*nlp.IntentResult, error)
}

// Bot handles the Slack Events API endpoint
type Bot struct {
	cfg      *config.Config
	detector IntentDetector
	svc      bot.Service
	dedup    cache.Store
	logger   *zap.Logger
}

// NewBot creates the events handler
func NewBot(cfg *config.Config, detector IntentDetector, svc bot.Service, dedup cache.Store, logger *zap.Logger) *Bot {
	return &Bot{
		cfg:      cfg,
		detector: detector,
		svc:      svc,
		dedup:    dedup,
		logger:   logger,
	}
}

// Events receives Slack Events API deliveries.
// POST /bot/events
func (h *Bot) Events(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if !slackext.VerifySignature(
		h.cfg.Slack.SigningSecret,
		c.Request().Header.Get("X-Slack-Request-Timestamp"),
		c.Request().Header.Get("X-Slack-Signature"),
		body,
	) {
		return HandleError(h.logger, c, errors.ErrSlackSignatureInvalid())
	}

	var env slackevent.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&env); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	switch env.Type {
	case slackevent.TypeURLVerification:
		return c.String(http.StatusOK, env.Challenge)

	case slackevent.TypeEventCallback:
		return h.handleEventCallback(c, &env)

	default:
		return c.String(http.StatusOK, eventsAckReply)
	}
}

// handleEventCallback acknowledges the delivery and hands the message off
// to the dispatcher. The response never waits on the handlers; Slack
// retries anything slower than three seconds.
func (h *Bot) handleEventCallback(c echo.Context, env *slackevent.Envelope) error {
	if env.FromBot() {
		return h.ack(c)
	}
	if env.Event.Type != "message" && env.Event.Type != "app_mention" {
		return h.ack(c)
	}
	if env.Event.Text == "" || env.Event.Channel == "" {
		return h.ack(c)
	}

	// Slack redelivers events it thinks were lost; the first delivery of an
	// event id wins.
	if env.EventID != "" && !h.dedup.SetIfAbsent("slack:event:"+env.EventID, "seen", eventDedupTTL) {
		h.logger.Debug("duplicate event delivery dropped",
			zap.String("event_id", env.EventID),
		)
		return h.ack(c)
	}

	result, err := h.detector.DetectIntent(c.Request().Context(), env.Event.Text, env.Event.User)
	if err != nil {
		h.logger.Error("intent detection failed",
			zap.String("event_id", env.EventID),
			zap.Error(err),
		)
		return h.ack(c)
	}

	msg := bot.MessageContext{
		ChannelID: env.Event.Channel,
		UserID:    env.Event.User,
	}

	// Detached from the request context: the ack must not wait on Slack
	// posts or database writes.
	go h.svc.Dispatch(context.Background(), result.Intent, result.Parameters, msg)

	return h.ack(c)
}

func (h *Bot) ack(c echo.Context) error {
	return c.String(http.StatusOK, eventsAckReply)
}
