package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailTemplate is the per-organization email template used by the daily
// deadline sweep. Subject and body support the placeholders
// [ProductName], [PartnerNumber], [Deadline], [DaysRemaining],
// [TotalValue] and [Responsible].
type MailTemplate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null"`
	Type           string    `gorm:"type:varchar(20);not null"` // only 'deadline' today
	Subject        string    `gorm:"not null"`
	Body           string    `gorm:"type:text;not null"`
	IsActive       bool      `gorm:"default:true"`
	gorm.Model
}

func (t *MailTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// TemplateTypeDeadline is the template the daily sweep looks up.
const TemplateTypeDeadline = "deadline"
