// Package slack wraps the Slack Web API calls the bot makes: posting
// channel messages and resolving user mentions to profiles.
package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// UserProfile is the normalized record a user-info lookup resolves to.
type UserProfile struct {
	Name  string
	Email string
}

// Client wraps the Slack Web API client
type Client struct {
	api *slackapi.Client
}

// NewClient creates a Slack Web API client from a bot token
func NewClient(botToken string) *Client {
	return &Client{
		api: slackapi.New(botToken),
	}
}

// PostMessage sends a text message to a channel, optionally with
// interactive attachments.
func (c *Client) PostMessage(ctx context.Context, channelID, text string, attachments ...slackapi.Attachment) error {
	opts := []slackapi.MsgOption{
		slackapi.MsgOptionText(text, false),
	}
	if len(attachments) > 0 {
		opts = append(opts, slackapi.MsgOptionAttachments(attachments...))
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return fmt.Errorf("failed to post message to %s: %w", channelID, err)
	}
	return nil
}

// GetUserProfile looks up a Slack user id and returns the normalized
// profile. The profile email may be empty when the workspace hides it.
func (c *Client) GetUserProfile(ctx context.Context, userID string) (*UserProfile, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}

	return &UserProfile{
		Name:  user.Name,
		Email: user.Profile.Email,
	}, nil
}
