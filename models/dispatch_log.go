package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DispatchLog records every reminder dispatch attempt made by the daily
// sweep, successful or not.
type DispatchLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null"`
	RecordID       uuid.UUID `gorm:"type:uuid;index;not null"`
	TemplateID     uuid.UUID `gorm:"type:uuid;index;not null"`

	Recipient    string `gorm:"not null"`
	Subject      string
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // email, sms

	SentAt time.Time
	gorm.Model
}

func (d *DispatchLog) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
