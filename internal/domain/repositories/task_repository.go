package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
)

// TaskRepository defines the interface for reminder task data access
type TaskRepository interface {
	// Create creates a new task record
	Create(ctx context.Context, task *entities.Task) error

	// FindByID retrieves a task by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// FindByRequester retrieves the most recent tasks created by a user
	FindByRequester(ctx context.Context, requesterID string, limit int) ([]*entities.Task, error)
}
