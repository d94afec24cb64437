package models

import (
	"github.com/google/uuid"
)

// Organization is the owning tenant for records, templates and users.
// Its currency is the default for new remainder records.
type Organization struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string

	CurrencyID uuid.UUID `gorm:"type:uuid;index"`
	Currency   Currency  `gorm:"foreignKey:CurrencyID"`

	// Default recipient for reminder emails on new records.
	DefaultReminderEmail string

	Settings          JSONB `gorm:"type:jsonb;default:'{}'"`
	DeadlineReminders bool  `gorm:"default:true"`
	SMSNotifications  bool  `gorm:"default:false"`

	Users            []User            `gorm:"foreignKey:OrganizationID"`
	Partners         []Partner         `gorm:"foreignKey:OrganizationID"`
	RemainderRecords []RemainderRecord `gorm:"foreignKey:OrganizationID"`
	MailTemplates    []MailTemplate    `gorm:"foreignKey:OrganizationID"`
}
