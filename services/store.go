// services/store.go
package services

import (
	"time"

	"remainderpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskScheduler persists follow-up tasks.
type GormTaskScheduler struct {
	DB *gorm.DB
}

func (g *GormTaskScheduler) Schedule(recordID, assigneeID uuid.UUID, summary, note string, due time.Time) error {
	task := models.FollowUpTask{
		RecordID:   recordID,
		AssigneeID: assigneeID,
		Summary:    summary,
		Note:       note,
		DueDate:    due,
		Status:     models.TaskStatusOpen,
	}
	return g.DB.Create(&task).Error
}

// GormTemplateSource reads an organization's active mail templates.
type GormTemplateSource struct {
	DB *gorm.DB
}

func (g *GormTemplateSource) ActiveTemplate(orgID uuid.UUID, templateType string) (*models.MailTemplate, error) {
	var tmpl models.MailTemplate
	if err := g.DB.Where("organization_id = ? AND type = ? AND is_active = true",
		orgID, templateType).First(&tmpl).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GormAuditLog persists append-only audit entries. Entries created here are
// system entries and carry no author.
type GormAuditLog struct {
	DB *gorm.DB
}

func (g *GormAuditLog) Append(recordID uuid.UUID, body string) error {
	entry := models.AuditEntry{
		RecordID: recordID,
		Body:     body,
	}
	return g.DB.Create(&entry).Error
}
