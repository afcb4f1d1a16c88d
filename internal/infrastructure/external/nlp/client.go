// Package nlp is a minimal client for the external intent-detection
// service. The service parses free text and returns the matched intent name
// plus extracted parameters as a protobuf Struct.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/pkg/config"
)

// Client is a minimal intent-detection client
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates an intent-detection client using values from the
// provided config.
func NewClient(cfg *config.NLPConfig) *Client {
	base := "http://localhost:5005"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IntentResult is the parsed outcome of a detect-intent call.
type IntentResult struct {
	Intent     string
	Confidence float64
	QueryText  string
	Parameters *structpb.Struct
}

type detectRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

type detectResponse struct {
	Intent     string          `json:"intent"`
	Confidence float64         `json:"confidence"`
	QueryText  string          `json:"query_text"`
	Parameters json.RawMessage `json:"parameters"`
}

// DetectIntent sends the message text to the intent service and returns the
// matched intent with its parameter struct. Parameters may be empty but are
// never nil on success.
func (c *Client) DetectIntent(ctx context.Context, text, sessionID string) (*IntentResult, error) {
	b, err := json.Marshal(detectRequest{Text: text, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/detect-intent"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("intent service returned status %d", resp.StatusCode)
	}

	var dr detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, err
	}

	params := &structpb.Struct{}
	if len(dr.Parameters) > 0 {
		if err := protojson.Unmarshal(dr.Parameters, params); err != nil {
			return nil, fmt.Errorf("failed to parse intent parameters: %w", err)
		}
	}

	return &IntentResult{
		Intent:     dr.Intent,
		Confidence: dr.Confidence,
		QueryText:  dr.QueryText,
		Parameters: params,
	}, nil
}
