package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/datatypes"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/pkg/format"
)

// promptReminder interprets a schedule-reminder payload: it persists a task
// pinned to the date's calendar day and posts the scheduling prompt with a
// confirm/decline attachment.
func (s *service) promptReminder(ctx context.Context, params *structpb.Struct, msg MessageContext) error {
	dateStr := stringField(params, "date")
	if dateStr == "" {
		return entities.ErrMissingDate
	}

	day, err := time.Parse("2006-01-02", datePart(dateStr))
	if err != nil {
		return entities.ErrInvalidDateTime
	}

	subject := format.Capitalize(stringField(params, "subject"))
	if subject == "" {
		subject = "Reminder"
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Summary:     subject,
		Day:         datatypes.Date(day),
		CalendarID:  entities.DefaultCalendarID,
		RequesterID: msg.UserID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to save reminder task",
			zap.String("requester", msg.UserID),
			zap.Error(err),
		)
		return s.slack.PostMessage(ctx, msg.ChannelID, saveFailedReply)
	}

	prompt := fmt.Sprintf("Scheduling: %s on %s", subject, format.Date(dateStr))

	return s.slack.PostMessage(ctx, msg.ChannelID, prompt, slackext.ReminderAttachment(task.ID.String()))
}
