package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
)

func TestPromptReminder_PersistsDayAndPosts(t *testing.T) {
	svc, deps := newTestService(t)

	params := mustStruct(t, map[string]interface{}{
		"subject": "call mom",
		"date":    "2019-05-22T12:00:00-04:00",
	})
	if err := svc.promptReminder(context.Background(), params, testMessage()); err != nil {
		t.Fatalf("promptReminder() unexpected error: %v", err)
	}

	if len(deps.tasks.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(deps.tasks.created))
	}
	task := deps.tasks.created[0]

	if task.Summary != "Call mom" {
		t.Fatalf("summary = %q, want %q", task.Summary, "Call mom")
	}
	wantDay, _ := time.Parse("2006-01-02", "2019-05-22")
	if !time.Time(task.Day).Equal(wantDay) {
		t.Fatalf("day = %v, want %v", time.Time(task.Day), wantDay)
	}
	if task.CalendarID != entities.DefaultCalendarID {
		t.Fatalf("calendar id = %q, want %q", task.CalendarID, entities.DefaultCalendarID)
	}
	if task.RequesterID != "U999" {
		t.Fatalf("requester = %q, want U999", task.RequesterID)
	}

	posts := deps.slack.messages()
	if len(posts) != 1 {
		t.Fatalf("posted %d messages, want 1", len(posts))
	}
	want := "Scheduling: Call mom on May 22, 2019"
	if posts[0].text != want {
		t.Fatalf("prompt = %q, want %q", posts[0].text, want)
	}
	if len(posts[0].attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(posts[0].attachments))
	}
	if !strings.HasPrefix(posts[0].attachments[0].CallbackID, slackext.ReminderCallbackPrefix) {
		t.Fatalf("callback id %q should carry the reminder prefix", posts[0].attachments[0].CallbackID)
	}
}

func TestPromptReminder_MissingDate(t *testing.T) {
	svc, deps := newTestService(t)

	params := mustStruct(t, map[string]interface{}{"subject": "call mom"})
	if err := svc.promptReminder(context.Background(), params, testMessage()); err != entities.ErrMissingDate {
		t.Fatalf("promptReminder() error = %v, want %v", err, entities.ErrMissingDate)
	}
	if len(deps.tasks.created) != 0 {
		t.Fatal("nothing should be persisted on validation failure")
	}
}

func TestPromptReminder_SaveFailureNotifiesUser(t *testing.T) {
	svc, deps := newTestService(t)
	deps.tasks.createErr = context.DeadlineExceeded

	params := mustStruct(t, map[string]interface{}{
		"subject": "call mom",
		"date":    "2019-05-22T12:00:00-04:00",
	})
	if err := svc.promptReminder(context.Background(), params, testMessage()); err != nil {
		t.Fatalf("promptReminder() should swallow the save failure, got %v", err)
	}

	posts := deps.slack.messages()
	if len(posts) != 1 || posts[0].text != saveFailedReply {
		t.Fatalf("expected one %q reply, got %+v", saveFailedReply, posts)
	}
}
