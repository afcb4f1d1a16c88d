package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/pkg/format"
)

const placeholderEmail = "temp@slack.com"

const (
	unitMinutes = "minutes"
	unitHours   = "hours"

	defaultDurationAmount = 30
)

// promptMeeting interprets a schedule-meeting payload: it composes the
// start/end instants, resolves invitees, persists a pending meeting, and
// posts the scheduling prompt with a confirm/decline attachment.
func (s *service) promptMeeting(ctx context.Context, params *structpb.Struct, msg MessageContext) error {
	dateStr := stringField(params, "date")
	if dateStr == "" {
		return entities.ErrMissingDate
	}
	timeStr := stringField(params, "time")
	if timeStr == "" {
		return entities.ErrMissingTime
	}
	inviteeValues := listField(params, "invitees")
	if len(inviteeValues) == 0 {
		return entities.ErrMissingInvitees
	}

	// Start instant: the calendar date comes from `date`, the clock from
	// `time`. Both arrive as combined date-time strings.
	startString := datePart(dateStr) + "T" + timePart(timeStr)
	start, err := time.Parse(time.RFC3339, startString)
	if err != nil {
		return entities.ErrInvalidDateTime
	}

	amount, unit := resolveDuration(structField(params, "duration"))
	end := start.Add(durationOf(amount, unit))

	invitees, err := s.resolveInvitees(ctx, inviteeValues)
	if err != nil {
		return err
	}
	if len(invitees) == 0 {
		return entities.ErrMissingInvitees
	}

	inviteeText := inviteeNames(invitees)
	subject := buildSubject(stringField(params, "subject"), inviteeText)

	meeting := &entities.Meeting{
		ID:              uuid.New(),
		Summary:         subject,
		StartTime:       start,
		EndTime:         end,
		TimeZone:        time.Local.String(),
		CalendarID:      entities.DefaultCalendarID,
		Status:          entities.MeetingStatusPending,
		RequesterID:     msg.UserID,
		ReminderDefault: true,
	}
	if err := meeting.SetAttendees(invitees); err != nil {
		return err
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		s.logger.Error("failed to save meeting",
			zap.String("requester", msg.UserID),
			zap.Error(err),
		)
		return s.slack.PostMessage(ctx, msg.ChannelID, saveFailedReply)
	}

	prompt := fmt.Sprintf("Scheduling: %s on %s at %s for %s",
		subject,
		format.Date(dateStr),
		format.Time(timeStr),
		format.Duration(amount, unit),
	)

	return s.slack.PostMessage(ctx, msg.ChannelID, prompt, slackext.MeetingAttachment(meeting.ID.String()))
}

// resolveDuration normalizes the optional duration struct. A unit starting
// with 'm' means minutes, anything else hours; an absent struct defaults to
// 30 minutes.
func resolveDuration(duration *structpb.Struct) (float64, string) {
	fields := duration.GetFields()
	if len(fields) == 0 {
		return defaultDurationAmount, unitMinutes
	}

	amount := fields["amount"].GetNumberValue()
	unit := unitHours
	if strings.HasPrefix(fields["unit"].GetStringValue(), "m") {
		unit = unitMinutes
	}
	return amount, unit
}

func durationOf(amount float64, unit string) time.Duration {
	if unit == unitMinutes {
		return time.Duration(amount * float64(time.Minute))
	}
	return time.Duration(amount * float64(time.Hour))
}

// resolveInvitees turns raw invitee tokens into attendees. A
// bracket-delimited mention is resolved through the user-info lookup; any
// other token is taken verbatim as a display name with a placeholder email.
func (s *service) resolveInvitees(ctx context.Context, values []*structpb.Value) ([]entities.Attendee, error) {
	var invitees []entities.Attendee

	for _, v := range values {
		token := strings.TrimSpace(v.GetStringValue())
		if token == "" {
			continue
		}

		if strings.HasPrefix(token, "<") && len(token) > 2 {
			userID := token[2:]
			if strings.HasSuffix(userID, ">") {
				userID = userID[:len(userID)-1]
			}

			profile, err := s.slack.GetUserProfile(ctx, userID)
			if err != nil {
				return nil, err
			}
			invitees = append(invitees, entities.Attendee{
				DisplayName: format.Capitalize(profile.Name),
				Email:       profile.Email,
			})
			continue
		}

		invitees = append(invitees, entities.Attendee{
			DisplayName: format.Capitalize(token),
			Email:       placeholderEmail,
		})
	}

	return invitees, nil
}

// inviteeNames joins display names for the prompt: comma-separated when
// there is more than one invitee, otherwise the single name.
func inviteeNames(invitees []entities.Attendee) string {
	if len(invitees) == 1 {
		return invitees[0].DisplayName
	}
	names := make([]string, len(invitees))
	for i, inv := range invitees {
		names[i] = inv.DisplayName
	}
	return strings.Join(names, ", ")
}

// buildSubject combines the supplied subject with the invitee list. An
// absent subject, or the upstream default "A meeting", becomes "Meeting".
func buildSubject(raw, inviteeText string) string {
	subject := "Meeting"
	if raw != "" {
		subject = format.Capitalize(raw)
	}
	if subject == "A meeting" {
		subject = "Meeting"
	}
	return subject + " with " + inviteeText
}
