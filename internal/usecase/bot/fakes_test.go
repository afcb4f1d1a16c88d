package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/weather"
)

type postedMessage struct {
	channelID   string
	text        string
	attachments []slackapi.Attachment
}

type fakeSlack struct {
	mu      sync.Mutex
	posts   []postedMessage
	postErr error
	users   map[string]*slackext.UserProfile
}

func (f *fakeSlack) PostMessage(_ context.Context, channelID, text string, attachments ...slackapi.Attachment) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, postedMessage{channelID: channelID, text: text, attachments: attachments})
	return nil
}

func (f *fakeSlack) GetUserProfile(_ context.Context, userID string) (*slackext.UserProfile, error) {
	profile, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", userID)
	}
	return profile, nil
}

func (f *fakeSlack) messages() []postedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]postedMessage, len(f.posts))
	copy(out, f.posts)
	return out
}

type fakeMeetings struct {
	mu        sync.Mutex
	created   []*entities.Meeting
	createErr error
	updateErr error
	statuses  map[uuid.UUID]entities.MeetingStatus
}

func (f *fakeMeetings) Create(_ context.Context, meeting *entities.Meeting) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, meeting)
	return nil
}

func (f *fakeMeetings) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.created {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, entities.ErrMeetingNotFound
}

func (f *fakeMeetings) UpdateStatus(_ context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = make(map[uuid.UUID]entities.MeetingStatus)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeMeetings) FindByRequester(_ context.Context, _ string, _ int) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetings) all() []*entities.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.Meeting, len(f.created))
	copy(out, f.created)
	return out
}

type fakeTasks struct {
	mu        sync.Mutex
	created   []*entities.Task
	createErr error
}

func (f *fakeTasks) Create(_ context.Context, task *entities.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, task)
	return nil
}

func (f *fakeTasks) FindByID(_ context.Context, _ uuid.UUID) (*entities.Task, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeTasks) FindByRequester(_ context.Context, _ string, _ int) ([]*entities.Task, error) {
	return nil, nil
}

type fakeWeather struct {
	mu    sync.Mutex
	resp  *weather.ForecastResponse
	err   error
	calls int
}

func (f *fakeWeather) Forecast(_ context.Context, _ string, _ int) (*weather.ForecastResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeCalendar struct {
	mu       sync.Mutex
	inserted []*entities.Meeting
	err      error
}

func (f *fakeCalendar) InsertMeeting(_ context.Context, m *entities.Meeting) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, m)
	return nil
}

type testDeps struct {
	slack    *fakeSlack
	meetings *fakeMeetings
	tasks    *fakeTasks
	weather  *fakeWeather
	calendar *fakeCalendar
}

func newTestService(t *testing.T) (*service, *testDeps) {
	t.Helper()

	deps := &testDeps{
		slack:    &fakeSlack{users: map[string]*slackext.UserProfile{}},
		meetings: &fakeMeetings{},
		tasks:    &fakeTasks{},
		weather:  &fakeWeather{},
		calendar: &fakeCalendar{},
	}

	svc := NewService(
		deps.meetings,
		deps.tasks,
		deps.slack,
		deps.weather,
		deps.calendar,
		time.Hour,
		zap.NewNop(),
	).(*service)

	return svc, deps
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("failed to build struct: %v", err)
	}
	return s
}

func testMessage() MessageContext {
	return MessageContext{ChannelID: "C123", UserID: "U999"}
}
