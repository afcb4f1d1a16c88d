package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tuananhdev/slack-assistant/errors"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/calendar"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/oauth"
)

// Calendar handles the Google Calendar connection flow. A single account is
// linked per deployment; confirmed meetings land in its calendar.
type Calendar struct {
	provider *oauth.GoogleProvider
	states   *oauth.StateManager
	tokens   calendar.TokenStore
	logger   *zap.Logger
}

// NewCalendar creates the calendar connection handler
func NewCalendar(provider *oauth.GoogleProvider, states *oauth.StateManager, tokens calendar.TokenStore, logger *zap.Logger) *Calendar {
	return &Calendar{
		provider: provider,
		states:   states,
		tokens:   tokens,
		logger:   logger,
	}
}

// GoogleLogin starts the OAuth consent flow.
// GET /google/login
func (h *Calendar) GoogleLogin(c echo.Context) error {
	state, err := h.states.GenerateState()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	return c.Redirect(http.StatusTemporaryRedirect, h.provider.GetAuthURL(state))
}

// GoogleCallback finishes the OAuth flow and stores the calendar token.
// GET /google/callback
func (h *Calendar) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	if !h.states.ValidateState(state) {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", nil))
	}

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	if err := h.tokens.Save(ctx, token); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	h.logger.Info("google calendar connected")

	return HandleSuccess(h.logger, c, map[string]string{
		"message": "Google Calendar connected",
	})
}
