package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/tuananhdev/slack-assistant/errors"
	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/internal/usecase/bot"
	"github.com/tuananhdev/slack-assistant/pkg/config"
)

// Interactive handles Slack interactive component callbacks: the
// confirm/decline buttons on scheduling prompts.
type Interactive struct {
	cfg    *config.Config
	svc    bot.Service
	logger *zap.Logger
}

// NewInteractive creates the interactive callback handler
func NewInteractive(cfg *config.Config, svc bot.Service, logger *zap.Logger) *Interactive {
	return &Interactive{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
	}
}

// Callback receives a button press. Slack sends the interaction as a
// form-encoded body whose `payload` field carries the JSON callback.
// POST /slack/interactive
func (h *Interactive) Callback(c echo.Context) error {
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

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	var callback slackapi.InteractionCallback
	if err := json.Unmarshal([]byte(form.Get("payload")), &callback); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if len(callback.ActionCallback.AttachmentActions) == 0 {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	actionValue := callback.ActionCallback.AttachmentActions[0].Value

	prefix, id, _ := strings.Cut(callback.CallbackID, ":")

	var reply string
	switch prefix {
	case slackext.MeetingCallbackPrefix:
		meetingID, parseErr := uuid.Parse(id)
		if parseErr != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		reply, err = h.svc.ConfirmMeeting(c.Request().Context(), meetingID, actionValue)

	case slackext.ReminderCallbackPrefix:
		reply, err = h.svc.ConfirmReminder(c.Request().Context(), actionValue)

	default:
		return HandleError(h.logger, c, errors.ErrInvalidArgument("unrecognized callback id"))
	}

	if err != nil {
		return HandleError(h.logger, c, mapConfirmError(err, actionValue))
	}

	h.logger.Info("interactive action applied",
		zap.String("callback_id", callback.CallbackID),
		zap.String("action", actionValue),
	)

	// The response body replaces the prompt message in the channel.
	return c.JSON(http.StatusOK, map[string]string{"text": reply})
}

func mapConfirmError(err error, actionValue string) error {
	switch {
	case stdErrors.Is(err, entities.ErrUnsupportedActionValue):
		return errors.ErrUnsupportedAction(actionValue)
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("meeting")
	default:
		return errors.ErrInternal(err)
	}
}
