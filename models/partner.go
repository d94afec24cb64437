package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner is the customer directory entry behind a partner number. Records
// keep the raw partner number; this table backs lookups and the default
// reminder recipient.
type Partner struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	OrganizationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_partner_number,priority:1,where:deleted_at IS NULL"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Number string `gorm:"not null;uniqueIndex:idx_org_partner_number,priority:2"`
	Name   string `gorm:"not null"`
	Email  string
	Phone  string
	Notes  string

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (p *Partner) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
