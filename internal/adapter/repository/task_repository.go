package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
	"github.com/tuananhdev/slack-assistant/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task record
func (r *taskRepository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID retrieves a task by its ID
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error

	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByRequester retrieves the most recent tasks created by a user
func (r *taskRepository) FindByRequester(ctx context.Context, requesterID string, limit int) ([]*entities.Task, error) {
	var tasks []*entities.Task
	query := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&tasks).Error
	return tasks, err
}
