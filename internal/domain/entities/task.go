package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task represents a reminder pinned to a calendar day. Tasks are written
// once and never mutated afterwards.
type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Summary     string         `gorm:"type:varchar(255);not null" json:"summary"`
	Day         datatypes.Date `gorm:"type:date;not null" json:"day"`
	CalendarID  string         `gorm:"type:varchar(64);not null;default:'primary'" json:"calendar_id"`
	RequesterID string         `gorm:"type:varchar(32);not null;index" json:"requester_id"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
