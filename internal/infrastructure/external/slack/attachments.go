package slack

import (
	slackapi "github.com/slack-go/slack"
)

// Callback id prefixes routing interactive responses back to the right
// confirmation flow.
const (
	MeetingCallbackPrefix  = "meeting_confirm"
	ReminderCallbackPrefix = "reminder_confirm"
)

// Interactive action values the confirmation buttons produce.
const (
	ActionConfirmed = "confirmed"
	ActionDeclined  = "declined"
)

// MeetingAttachment builds the confirm/decline attachment for a scheduling
// prompt. The meeting id rides in the callback id so the interactive event
// can transition the right record.
func MeetingAttachment(meetingID string) slackapi.Attachment {
	return slackapi.Attachment{
		Text:       "Would you like to confirm this meeting?",
		Fallback:   "You are unable to confirm this meeting",
		CallbackID: MeetingCallbackPrefix + ":" + meetingID,
		Color:      "#3AA3E3",
		Actions: []slackapi.AttachmentAction{
			{
				Name:  "confirm",
				Text:  "Confirm",
				Type:  "button",
				Value: ActionConfirmed,
				Style: "primary",
			},
			{
				Name:  "decline",
				Text:  "Decline",
				Type:  "button",
				Value: ActionDeclined,
				Style: "danger",
			},
		},
	}
}

// ReminderAttachment builds the confirm/decline attachment for a reminder
// prompt.
func ReminderAttachment(taskID string) slackapi.Attachment {
	return slackapi.Attachment{
		Text:       "Would you like to confirm this reminder?",
		Fallback:   "You are unable to confirm this reminder",
		CallbackID: ReminderCallbackPrefix + ":" + taskID,
		Color:      "#3AA3E3",
		Actions: []slackapi.AttachmentAction{
			{
				Name:  "confirm",
				Text:  "Confirm",
				Type:  "button",
				Value: ActionConfirmed,
				Style: "primary",
			},
			{
				Name:  "decline",
				Text:  "Decline",
				Type:  "button",
				Value: ActionDeclined,
				Style: "danger",
			},
		},
	}
}
