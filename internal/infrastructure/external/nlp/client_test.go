package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tuananhdev/slack-assistant/pkg/config"
)

func TestDetectIntent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["text"] != "remind me to call mom tomorrow" {
			t.Fatalf("unexpected text %v", payload["text"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "schedule-reminder",
			"confidence": 0.92,
			"query_text": "remind me to call mom tomorrow",
			"parameters": map[string]interface{}{
				"subject": "call mom",
				"date":    "2019-05-22T12:00:00-04:00",
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.NLPConfig{BaseURL: ts.URL})

	res, err := client.DetectIntent(context.Background(), "remind me to call mom tomorrow", "session-1")
	if err != nil {
		t.Fatalf("DetectIntent() unexpected error: %v", err)
	}
	if res.Intent != "schedule-reminder" {
		t.Fatalf("unexpected intent %q", res.Intent)
	}
	if got := res.Parameters.GetFields()["subject"].GetStringValue(); got != "call mom" {
		t.Fatalf("unexpected subject parameter %q", got)
	}
}

func TestDetectIntent_ServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(&config.NLPConfig{BaseURL: ts.URL})

	if _, err := client.DetectIntent(context.Background(), "hello", ""); err == nil {
		t.Fatal("DetectIntent() expected error on 5xx")
	}
}
