// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Notifier dispatches the templated reminder for one record and logs the
// attempt. Sending is synchronous; a returned error means nothing reached
// the recipient.
type Notifier interface {
	Notify(org *models.Organization, record *models.RemainderRecord, tmpl *models.MailTemplate) error
}

// TaskScheduler creates a follow-up task assigned to a user.
type TaskScheduler interface {
	Schedule(recordID, assigneeID uuid.UUID, summary, note string, due time.Time) error
}

// AuditLog appends one line to a record's append-only log.
type AuditLog interface {
	Append(recordID uuid.UUID, body string) error
}

// TemplateSource looks up an organization's active mail template of the
// given type. An error means none is configured.
type TemplateSource interface {
	ActiveTemplate(orgID uuid.UUID, templateType string) (*models.MailTemplate, error)
}

// ReminderService runs the daily deadline sweep: it finds active records
// whose reminder date is today and fires the email + follow-up task +
// audit entry for each.
type ReminderService struct {
	db        *gorm.DB
	notifier  Notifier
	tasks     TaskScheduler
	audit     AuditLog
	templates TemplateSource
	now       func() time.Time
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		db:        db,
		notifier:  NewMailNotifier(db),
		tasks:     &GormTaskScheduler{DB: db},
		audit:     &GormAuditLog{DB: db},
		templates: &GormTemplateSource{DB: db},
		now:       time.Now,
	}
}

// StartScheduler registers the sweep with cron. Default is daily at 7 AM;
// override with REMINDER_CRON.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		spec = "0 7 * * *"
	}
	if _, err := c.AddFunc(spec, s.RunDailySweep); err != nil {
		log.Printf("Failed to schedule reminder sweep: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// RunDailySweep processes every organization sequentially.
func (s *ReminderService) RunDailySweep() {
	log.Println("Starting daily deadline sweep...")

	var orgs []models.Organization
	if err := s.db.Find(&orgs).Error; err != nil {
		log.Printf("Failed to fetch organizations: %v", err)
		return
	}

	for i := range orgs {
		s.processOrganization(&orgs[i])
	}

	log.Println("Daily deadline sweep completed")
}

func (s *ReminderService) processOrganization(org *models.Organization) {
	if !org.DeadlineReminders {
		return
	}

	// No active template means the whole sweep is skipped for this
	// organization, with no side effects. Incomplete configuration must not
	// fail the scheduled job.
	tmpl, err := s.templates.ActiveTemplate(org.ID, models.TemplateTypeDeadline)
	if err != nil {
		log.Printf("Org %s: no active deadline template, sweep skipped", org.ID)
		return
	}

	var records []models.RemainderRecord
	if err := s.db.Preload("ResponsibleUser").
		Where("organization_id = ? AND state IN ?", org.ID,
			[]models.RemainderState{models.StateDraft, models.StateConfirmed}).
		Find(&records).Error; err != nil {
		log.Printf("Org %s: failed to fetch records: %v", org.ID, err)
		return
	}

	today := utils.BeginningOfDay(s.now())
	fired := 0
	for i := range records {
		if s.remindRecord(org, &records[i], tmpl, today) {
			fired++
		}
	}

	if fired > 0 {
		log.Printf("Org %s: fired %d deadline reminder(s)", org.ID, fired)
	}
}

// remindRecord fires the reminder for one record if its target date is
// today. Records without a deadline are skipped. Returns true when the
// reminder was dispatched.
func (s *ReminderService) remindRecord(org *models.Organization, record *models.RemainderRecord, tmpl *models.MailTemplate, today time.Time) bool {
	target, ok := record.TargetReminderDate()
	if !ok {
		return false
	}
	if !utils.SameDay(today, target) {
		return false
	}

	if err := s.notifier.Notify(org, record, tmpl); err != nil {
		log.Printf("Failed to send reminder for %s: %v", record.DisplayName(), err)
		return false
	}

	summary := fmt.Sprintf("DEADLINE ALERT: Follow up on %s (Due in %d days)",
		record.ProductName, record.ReminderDaysBefore)
	note := fmt.Sprintf("Reminder email sent to %s. Follow up before: %s.",
		record.ReminderRecipientEmail, utils.FormatDate(*record.PurchaseDeadline))

	if err := s.tasks.Schedule(record.ID, record.ResponsibleUserID, summary, note, today); err != nil {
		log.Printf("Failed to schedule follow-up for %s: %v", record.DisplayName(), err)
		return false
	}

	body := fmt.Sprintf("Deadline reminder email sent and activity created for %s.",
		record.ResponsibleUser.Name)
	if err := s.audit.Append(record.ID, body); err != nil {
		log.Printf("Failed to log reminder for %s: %v", record.DisplayName(), err)
	}

	return true
}
