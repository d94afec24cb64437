package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowUpTaskStatus is the state of a scheduled follow-up.
type FollowUpTaskStatus string

const (
	TaskStatusOpen FollowUpTaskStatus = "open"
	TaskStatusDone FollowUpTaskStatus = "done"
)

// FollowUpTask is the activity the daily sweep schedules for the
// responsible user when a reminder fires.
type FollowUpTask struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecordID   uuid.UUID `gorm:"type:uuid;index;not null" json:"recordId"`
	AssigneeID uuid.UUID `gorm:"type:uuid;index;not null" json:"assigneeId"`

	Summary string    `gorm:"not null" json:"summary"`
	Note    string    `gorm:"type:text" json:"note"`
	DueDate time.Time `gorm:"type:date;not null" json:"dueDate"`

	Status      FollowUpTaskStatus `gorm:"type:varchar(10);not null;default:'open'" json:"status"`
	CompletedAt *time.Time         `json:"completedAt"`

	gorm.Model
}

func (t *FollowUpTask) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
