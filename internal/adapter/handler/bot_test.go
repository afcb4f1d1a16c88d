package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/internal/infrastructure/cache"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/nlp"
	"github.com/tuananhdev/slack-assistant/internal/usecase/bot"
	"github.com/tuananhdev/slack-assistant/pkg/config"
	pkgvalidator "github.com/tuananhdev/slack-assistant/pkg/validator"
)

const testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"

type fakeDetector struct {
	result *nlp.IntentResult
	err    error
	calls  int
}

func (f *fakeDetector) DetectIntent(_ context.Context, _, _ string) (*nlp.IntentResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type dispatched struct {
	intent string
	msg    bot.MessageContext
}

type fakeBotService struct {
	mu          sync.Mutex
	dispatches  []dispatched
	dispatchedC chan struct{}

	confirmMeetingReply  string
	confirmReminderReply string
	confirmErr           error
	lastMeetingID        uuid.UUID
	lastAction           string
}

func newFakeBotService() *fakeBotService {
	return &fakeBotService{dispatchedC: make(chan struct{}, 8)}
}

func (f *fakeBotService) Dispatch(_ context.Context, intent string, _ *structpb.Struct, msg bot.MessageContext) {
	f.mu.Lock()
	f.dispatches = append(f.dispatches, dispatched{intent: intent, msg: msg})
	f.mu.Unlock()
	f.dispatchedC <- struct{}{}
}

func (f *fakeBotService) ConfirmMeeting(_ context.Context, meetingID uuid.UUID, actionValue string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMeetingID = meetingID
	f.lastAction = actionValue
	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	return f.confirmMeetingReply, nil
}

func (f *fakeBotService) ConfirmReminder(_ context.Context, actionValue string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAction = actionValue
	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	return f.confirmReminderReply, nil
}

func (f *fakeBotService) waitForDispatch(t *testing.T) dispatched {
	t.Helper()
	select {
	case <-f.dispatchedC:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dispatches[len(f.dispatches)-1]
}

func (f *fakeBotService) dispatchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dispatches)
}

func testConfig() *config.Config {
	return &config.Config{
		Slack: config.SlackConfig{
			BotToken:      "xoxb-test",
			SigningSecret: testSigningSecret,
		},
	}
}

// sign produces the v0 signature headers Slack would attach to body.
func sign(secret, body string) (timestamp, signature string) {
	timestamp = strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	signature = "v0=" + hex.EncodeToString(mac.Sum(nil))
	return timestamp, signature
}

func newEventsRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = pkgvalidator.New()

	req := httptest.NewRequest(http.MethodPost, "/bot/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ts, sig := sign(testSigningSecret, body)
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", sig)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newBotHandler(svc *fakeBotService, detector *fakeDetector) *Bot {
	return NewBot(testConfig(), detector, svc, cache.NewMemoryStore(), zap.NewNop())
}

func messageEnvelope(eventID, text string) string {
	return fmt.Sprintf(`{
		"type": "event_callback",
		"event_id": %q,
		"event": {"type": "message", "text": %q, "user": "U999", "channel": "C123"}
	}`, eventID, text)
}

func TestEvents_URLVerificationEchoesChallenge(t *testing.T) {
	h := newBotHandler(newFakeBotService(), &fakeDetector{})

	body := `{"type": "url_verification", "challenge": "abc123def"}`
	c, rec := newEventsRequest(t, body)

	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "abc123def" {
		t.Fatalf("body = %q, want the raw challenge", got)
	}
}

func TestEvents_InvalidSignatureRejected(t *testing.T) {
	svc := newFakeBotService()
	h := newBotHandler(svc, &fakeDetector{})

	body := messageEnvelope("Ev001", "schedule a meeting")
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/bot/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("X-Slack-Signature", "v0=deadbeef")
	rec := httptest.NewRecorder()

	if err := h.Events(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if svc.dispatchCount() != 0 {
		t.Fatal("nothing should be dispatched for an unsigned request")
	}
}

func TestEvents_MessageDispatched(t *testing.T) {
	svc := newFakeBotService()
	detector := &fakeDetector{result: &nlp.IntentResult{
		Intent:     bot.IntentShowWeather,
		Parameters: &structpb.Struct{},
	}}
	h := newBotHandler(svc, detector)

	c, rec := newEventsRequest(t, messageEnvelope("Ev001", "what's the weather in austin"))
	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != eventsAckReply {
		t.Fatalf("body = %q, want %q", got, eventsAckReply)
	}

	d := svc.waitForDispatch(t)
	if d.intent != bot.IntentShowWeather {
		t.Fatalf("dispatched intent = %q, want %q", d.intent, bot.IntentShowWeather)
	}
	if d.msg.ChannelID != "C123" || d.msg.UserID != "U999" {
		t.Fatalf("message context = %+v", d.msg)
	}
}

func TestEvents_DuplicateDeliveryDropped(t *testing.T) {
	svc := newFakeBotService()
	detector := &fakeDetector{result: &nlp.IntentResult{
		Intent:     bot.IntentShowWeather,
		Parameters: &structpb.Struct{},
	}}
	h := newBotHandler(svc, detector)

	body := messageEnvelope("Ev001", "what's the weather in austin")

	c, _ := newEventsRequest(t, body)
	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}
	svc.waitForDispatch(t)

	c, rec := newEventsRequest(t, body)
	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error on redelivery: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("redelivery status = %d, want 200", rec.Code)
	}
	if detector.calls != 1 {
		t.Fatalf("detector called %d times, want 1", detector.calls)
	}
	if svc.dispatchCount() != 1 {
		t.Fatalf("dispatched %d times, want 1", svc.dispatchCount())
	}
}

func TestEvents_BotMessagesIgnored(t *testing.T) {
	svc := newFakeBotService()
	detector := &fakeDetector{}
	h := newBotHandler(svc, detector)

	body := `{
		"type": "event_callback",
		"event_id": "Ev002",
		"event": {"type": "message", "text": "Scheduling: ...", "bot_id": "B001", "channel": "C123"}
	}`
	c, rec := newEventsRequest(t, body)
	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if detector.calls != 0 || svc.dispatchCount() != 0 {
		t.Fatal("bot-authored messages must not be processed")
	}
}

func TestEvents_DetectorFailureStillAcks(t *testing.T) {
	svc := newFakeBotService()
	detector := &fakeDetector{err: context.DeadlineExceeded}
	h := newBotHandler(svc, detector)

	c, rec := newEventsRequest(t, messageEnvelope("Ev003", "schedule a meeting"))
	if err := h.Events(c); err != nil {
		t.Fatalf("Events() unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: Slack must not retry on our failures", rec.Code)
	}
	if svc.dispatchCount() != 0 {
		t.Fatal("nothing should be dispatched when intent detection fails")
	}
}
