package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntry is one append-only log line on a remainder record. Entries are
// never updated or deleted.
type AuditEntry struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecordID uuid.UUID  `gorm:"type:uuid;index;not null" json:"recordId"`
	AuthorID *uuid.UUID `gorm:"type:uuid" json:"authorId"` // nil for system entries
	Body     string     `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
