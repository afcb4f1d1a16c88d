package entities

import "errors"

// Domain errors
var (
	// Intent payload validation errors
	ErrMissingDate     = errors.New("missing required field: date")
	ErrMissingTime     = errors.New("missing required field: time")
	ErrMissingInvitees = errors.New("missing required field: invitees")
	ErrMissingQuery    = errors.New("missing required field: query")
	ErrInvalidDateTime = errors.New("date and time could not be combined into a valid instant")

	// Interactive errors
	ErrUnsupportedActionValue = errors.New("unsupported action value")

	// Record errors
	ErrMeetingNotFound = errors.New("meeting not found")
)
