// Package calendar pushes confirmed meetings to the Google Calendar API.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
)

// ErrNoToken indicates no Google account has been connected yet.
var ErrNoToken = errors.New("no google calendar token stored")

// Client is a minimal Google Calendar events client
type Client struct {
	oauthCfg *oauth2.Config
	tokens   TokenStore
	baseURL  string
}

// NewClient creates a calendar client. Requests authenticate with the token
// held in the store; oauthCfg refreshes it when expired.
func NewClient(oauthCfg *oauth2.Config, tokens TokenStore) *Client {
	return &Client{
		oauthCfg: oauthCfg,
		tokens:   tokens,
		baseURL:  "https://www.googleapis.com/calendar/v3",
	}
}

// eventDateTime mirrors the calendar API's start/end shape
type eventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

// eventAttendee mirrors the calendar API's attendee shape
type eventAttendee struct {
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email"`
}

// event is the insert payload for a calendar event
type event struct {
	Summary   string          `json:"summary"`
	Start     eventDateTime   `json:"start"`
	End       eventDateTime   `json:"end"`
	Attendees []eventAttendee `json:"attendees,omitempty"`
	Reminders struct {
		UseDefault bool `json:"useDefault"`
	} `json:"reminders"`
}

func buildEvent(m *entities.Meeting) (*event, error) {
	attendees, err := m.AttendeeList()
	if err != nil {
		return nil, fmt.Errorf("failed to read attendees: %w", err)
	}

	ev := &event{
		Summary: m.Summary,
		Start: eventDateTime{
			DateTime: m.StartTime.Format(time.RFC3339),
			TimeZone: m.TimeZone,
		},
		End: eventDateTime{
			DateTime: m.EndTime.Format(time.RFC3339),
			TimeZone: m.TimeZone,
		},
	}
	ev.Reminders.UseDefault = m.ReminderDefault

	for _, a := range attendees {
		ev.Attendees = append(ev.Attendees, eventAttendee{
			DisplayName: a.DisplayName,
			Email:       a.Email,
		})
	}
	return ev, nil
}

// InsertMeeting inserts a confirmed meeting into the meeting's calendar.
// Transient API failures are retried with exponential backoff.
func (c *Client) InsertMeeting(ctx context.Context, m *entities.Meeting) error {
	token, err := c.tokens.Load(ctx)
	if err != nil {
		return err
	}

	ev, err := buildEvent(m)
	if err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	httpClient := c.oauthCfg.Client(ctx, token)
	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(m.CalendarID))

	insertFn := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("calendar api returned status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("calendar api returned status %d", resp.StatusCode))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.Retry(insertFn, backoff.WithContext(bo, ctx))
}
