package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting record
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// UpdateStatus updates the confirmation status of a meeting
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error

	// FindByRequester retrieves the most recent meetings created by a user
	FindByRequester(ctx context.Context, requesterID string, limit int) ([]*entities.Meeting, error)
}
