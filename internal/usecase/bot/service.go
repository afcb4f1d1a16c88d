// Package bot implements the intent-to-action core: an inbound message,
// already parsed into an intent and parameters by the intent-detection
// service, is dispatched to exactly one handler which formats a reply,
// optionally persists a record, and posts back to the originating channel.
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	"github.com/tuananhdev/slack-assistant/internal/domain/repositories"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/weather"
	"github.com/tuananhdev/slack-assistant/pkg/throttle"
)

// Intent names produced by the intent-detection service.
const (
	IntentScheduleMeeting  = "schedule-meeting"
	IntentScheduleReminder = "schedule-reminder"
	IntentShowWeather      = "show-weather"
)

// Replies for paths that have no richer message to offer.
const (
	unknownEventReply   = "This is some unknown event"
	saveFailedReply     = "Sorry, I couldn't save that. Please try again."
	genericFailureReply = "Sorry, something went wrong on my end. Please try again."
)

// MessageContext identifies where an inbound message came from.
type MessageContext struct {
	ChannelID string
	UserID    string
}

// SlackGateway is the outbound chat surface the handlers use.
type SlackGateway interface {
	PostMessage(ctx context.Context, channelID, text string, attachments ...slackapi.Attachment) error
	GetUserProfile(ctx context.Context, userID string) (*slackext.UserProfile, error)
}

// WeatherAPI fetches forecasts.
type WeatherAPI interface {
	Forecast(ctx context.Context, query string, days int) (*weather.ForecastResponse, error)
}

// CalendarAPI pushes confirmed meetings to an external calendar.
type CalendarAPI interface {
	InsertMeeting(ctx context.Context, m *entities.Meeting) error
}

// Service defines the bot orchestration methods
type Service interface {
	// Dispatch routes an intent to its handler. It never lets a handler
	// failure escape: downstream errors are logged and, where possible,
	// reported to the originating channel.
	Dispatch(ctx context.Context, intent string, params *structpb.Struct, msg MessageContext)

	// ConfirmMeeting applies a confirm/decline action to a pending meeting
	// and returns the reply text.
	ConfirmMeeting(ctx context.Context, meetingID uuid.UUID, actionValue string) (string, error)

	// ConfirmReminder acknowledges a confirm/decline action on a reminder
	// and returns the reply text.
	ConfirmReminder(ctx context.Context, actionValue string) (string, error)
}

type service struct {
	meetings repositories.MeetingRepository
	tasks    repositories.TaskRepository
	slack    SlackGateway
	weather  WeatherAPI
	calendar CalendarAPI
	limiter  *throttle.Limiter
	logger   *zap.Logger
}

// NewService constructs the bot service. calendar may be nil when no Google
// account is connected; confirmed meetings then stay local.
func NewService(
	meetings repositories.MeetingRepository,
	tasks repositories.TaskRepository,
	slack SlackGateway,
	weatherAPI WeatherAPI,
	calendar CalendarAPI,
	throttleWindow time.Duration,
	logger *zap.Logger,
) Service {
	return &service{
		meetings: meetings,
		tasks:    tasks,
		slack:    slack,
		weather:  weatherAPI,
		calendar: calendar,
		limiter:  throttle.New(throttleWindow),
		logger:   logger,
	}
}

// Dispatch selects and invokes exactly one handler for the intent. The
// throttled intents admit one call per window; calls inside the window are
// dropped, not queued.
func (s *service) Dispatch(ctx context.Context, intent string, params *structpb.Struct, msg MessageContext) {
	var err error

	switch intent {
	case IntentScheduleMeeting:
		if !s.allow(intent) {
			return
		}
		err = s.promptMeeting(ctx, params, msg)

	case IntentScheduleReminder:
		if !s.allow(intent) {
			return
		}
		err = s.promptReminder(ctx, params, msg)

	case IntentShowWeather:
		if !s.allow(intent) {
			return
		}
		err = s.displayWeather(ctx, params, msg)

	default:
		err = s.slack.PostMessage(ctx, msg.ChannelID, unknownEventReply)
	}

	if err == nil {
		return
	}

	if reply := validationReply(err); reply != "" {
		s.notify(ctx, msg.ChannelID, reply)
		return
	}

	s.logger.Error("intent handler failed",
		zap.String("intent", intent),
		zap.String("channel", msg.ChannelID),
		zap.Error(err),
	)
	s.notify(ctx, msg.ChannelID, genericFailureReply)
}

func (s *service) allow(intent string) bool {
	if s.limiter.Allow(intent) {
		return true
	}
	s.logger.Debug("throttled intent dropped", zap.String("intent", intent))
	return false
}

// notify posts a message and only logs when even that fails.
func (s *service) notify(ctx context.Context, channelID, text string) {
	if err := s.slack.PostMessage(ctx, channelID, text); err != nil {
		s.logger.Error("failed to notify channel",
			zap.String("channel", channelID),
			zap.Error(err),
		)
	}
}

// validationReply maps payload validation errors to user-facing apologies.
// Anything else returns "".
func validationReply(err error) string {
	switch {
	case errors.Is(err, entities.ErrMissingDate):
		return "Sorry, I couldn't work out the date for that. Please try again."
	case errors.Is(err, entities.ErrMissingTime):
		return "Sorry, I couldn't work out the time for that. Please try again."
	case errors.Is(err, entities.ErrMissingInvitees):
		return "Sorry, I couldn't tell who to invite. Please try again."
	case errors.Is(err, entities.ErrMissingQuery):
		return "Sorry, I need a location to look up the weather. Please try again."
	case errors.Is(err, entities.ErrInvalidDateTime):
		return "Sorry, I couldn't understand that date and time. Please try again."
	}
	return ""
}
