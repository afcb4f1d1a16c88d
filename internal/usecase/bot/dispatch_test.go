package bot

import (
	"context"
	"sync"
	"testing"
)

func TestDispatch_UnknownIntentReplies(t *testing.T) {
	svc, deps := newTestService(t)

	svc.Dispatch(context.Background(), "tell-joke", mustStruct(t, nil), testMessage())

	posts := deps.slack.messages()
	if len(posts) != 1 || posts[0].text != unknownEventReply {
		t.Fatalf("expected one %q reply, got %+v", unknownEventReply, posts)
	}
}

func TestDispatch_ValidationFailureReplies(t *testing.T) {
	svc, deps := newTestService(t)

	params := mustStruct(t, meetingParams(t, map[string]interface{}{"date": nil}))
	svc.Dispatch(context.Background(), IntentScheduleMeeting, params, testMessage())

	posts := deps.slack.messages()
	want := "Sorry, I couldn't work out the date for that. Please try again."
	if len(posts) != 1 || posts[0].text != want {
		t.Fatalf("expected one %q reply, got %+v", want, posts)
	}
	if len(deps.meetings.all()) != 0 {
		t.Fatal("nothing should be persisted for an invalid payload")
	}
}

func TestDispatch_ThrottleDropsBurst(t *testing.T) {
	svc, deps := newTestService(t)
	params := mustStruct(t, meetingParams(t, map[string]interface{}{
		"invitees": []interface{}{"bob"},
	}))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Dispatch(context.Background(), IntentScheduleMeeting, params, testMessage())
		}()
	}
	wg.Wait()

	if got := len(deps.meetings.all()); got != 1 {
		t.Fatalf("persisted %d meetings, want exactly 1", got)
	}
	if got := len(deps.slack.messages()); got != 1 {
		t.Fatalf("posted %d messages, want exactly 1", got)
	}
}

func TestDispatch_IntentsThrottleIndependently(t *testing.T) {
	svc, deps := newTestService(t)

	svc.Dispatch(context.Background(), IntentScheduleMeeting, mustStruct(t, meetingParams(t, map[string]interface{}{
		"invitees": []interface{}{"bob"},
	})), testMessage())
	svc.Dispatch(context.Background(), IntentScheduleReminder, mustStruct(t, map[string]interface{}{
		"subject": "call mom",
		"date":    "2019-05-22T12:00:00-04:00",
	}), testMessage())

	if got := len(deps.slack.messages()); got != 2 {
		t.Fatalf("posted %d messages, want 2: the intents must not share a window", got)
	}
	if len(deps.meetings.all()) != 1 || len(deps.tasks.created) != 1 {
		t.Fatal("one meeting and one task should be persisted")
	}
}

func TestDispatch_HandlerFailureReportsGenerically(t *testing.T) {
	svc, deps := newTestService(t)

	// A mention the profile lookup cannot resolve fails the handler with a
	// non-validation error.
	params := mustStruct(t, meetingParams(t, map[string]interface{}{
		"invitees": []interface{}{"<@UNOBODY>"},
	}))
	svc.Dispatch(context.Background(), IntentScheduleMeeting, params, testMessage())

	posts := deps.slack.messages()
	if len(posts) != 1 || posts[0].text != genericFailureReply {
		t.Fatalf("expected one %q reply, got %+v", genericFailureReply, posts)
	}
	if len(deps.meetings.all()) != 0 {
		t.Fatal("nothing should be persisted when invitee resolution fails")
	}
}
