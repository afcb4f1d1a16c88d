package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultCalendarID is the calendar every record is written against.
const DefaultCalendarID = "primary"

// MeetingStatus represents the confirmation state of a meeting
type MeetingStatus string

const (
	MeetingStatusPending   MeetingStatus = "pending"
	MeetingStatusConfirmed MeetingStatus = "confirmed"
	MeetingStatusDeclined  MeetingStatus = "declined"
)

// Attendee is a meeting invitee. Attendees have no identity of their own;
// they live inside the owning meeting record.
type Attendee struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Meeting represents a scheduled meeting awaiting confirmation
type Meeting struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Summary         string         `gorm:"type:varchar(255);not null" json:"summary"`
	StartTime       time.Time      `gorm:"not null" json:"start_time"`
	EndTime         time.Time      `gorm:"not null" json:"end_time"`
	TimeZone        string         `gorm:"type:varchar(64);not null" json:"time_zone"`
	Attendees       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"attendees"`
	CalendarID      string         `gorm:"type:varchar(64);not null;default:'primary'" json:"calendar_id"`
	Status          MeetingStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RequesterID     string         `gorm:"type:varchar(32);not null;index" json:"requester_id"`
	ReminderDefault bool           `gorm:"not null;default:true" json:"reminder_default"`
	CreatedAt       time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// SetAttendees stores the invitee list on the record.
func (m *Meeting) SetAttendees(attendees []Attendee) error {
	b, err := json.Marshal(attendees)
	if err != nil {
		return err
	}
	m.Attendees = datatypes.JSON(b)
	return nil
}

// AttendeeList returns the invitee list stored on the record.
func (m *Meeting) AttendeeList() ([]Attendee, error) {
	if len(m.Attendees) == 0 {
		return nil, nil
	}
	var attendees []Attendee
	if err := json.Unmarshal(m.Attendees, &attendees); err != nil {
		return nil, err
	}
	return attendees, nil
}

// IsPending checks if the meeting still awaits confirmation
func (m *Meeting) IsPending() bool {
	return m.Status == MeetingStatusPending
}

// Confirm marks the meeting as confirmed
func (m *Meeting) Confirm() {
	m.Status = MeetingStatusConfirmed
}

// Decline marks the meeting as declined
func (m *Meeting) Decline() {
	m.Status = MeetingStatusDeclined
}
