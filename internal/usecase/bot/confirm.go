package bot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
)

const (
	meetingConfirmedReply  = "Meeting Confirmed"
	meetingDeclinedReply   = "Meeting Declined"
	reminderConfirmedReply = "Reminder Confirmed"
	reminderDeclinedReply  = "Reminder Declined"
)

// ConfirmMeeting applies a confirm/decline action to the meeting carried in
// the interactive callback. A confirmed meeting is additionally pushed to
// the external calendar, best effort.
func (s *service) ConfirmMeeting(ctx context.Context, meetingID uuid.UUID, actionValue string) (string, error) {
	switch actionValue {
	case slackext.ActionConfirmed:
		if err := s.meetings.UpdateStatus(ctx, meetingID, entities.MeetingStatusConfirmed); err != nil {
			return "", err
		}
		s.pushToCalendar(ctx, meetingID)
		return meetingConfirmedReply, nil

	case slackext.ActionDeclined:
		if err := s.meetings.UpdateStatus(ctx, meetingID, entities.MeetingStatusDeclined); err != nil {
			return "", err
		}
		return meetingDeclinedReply, nil

	default:
		return "", entities.ErrUnsupportedActionValue
	}
}

// ConfirmReminder acknowledges a confirm/decline action on a reminder.
// Tasks are written once on scheduling and carry no status to transition.
func (s *service) ConfirmReminder(ctx context.Context, actionValue string) (string, error) {
	switch actionValue {
	case slackext.ActionConfirmed:
		return reminderConfirmedReply, nil
	case slackext.ActionDeclined:
		return reminderDeclinedReply, nil
	default:
		return "", entities.ErrUnsupportedActionValue
	}
}

// pushToCalendar inserts the confirmed meeting into the external calendar.
// Failures never surface to the user; the confirmation already happened.
func (s *service) pushToCalendar(ctx context.Context, meetingID uuid.UUID) {
	if s.calendar == nil {
		return
	}

	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		s.logger.Error("failed to load meeting for calendar push",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.calendar.InsertMeeting(ctx, meeting); err != nil {
		s.logger.Error("failed to push meeting to calendar",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("meeting pushed to calendar",
		zap.String("meeting_id", meetingID.String()),
	)
}
