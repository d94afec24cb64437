package services

import (
	"errors"
	"testing"
	"time"

	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) Notify(org *models.Organization, record *models.RemainderRecord, tmpl *models.MailTemplate) error {
	f.calls++
	return f.err
}

type scheduledTask struct {
	recordID   uuid.UUID
	assigneeID uuid.UUID
	summary    string
	note       string
	due        time.Time
}

type fakeTaskScheduler struct {
	tasks []scheduledTask
	err   error
}

func (f *fakeTaskScheduler) Schedule(recordID, assigneeID uuid.UUID, summary, note string, due time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, scheduledTask{recordID, assigneeID, summary, note, due})
	return nil
}

type auditEntry struct {
	recordID uuid.UUID
	body     string
}

type fakeAuditLog struct {
	entries []auditEntry
}

func (f *fakeAuditLog) Append(recordID uuid.UUID, body string) error {
	f.entries = append(f.entries, auditEntry{recordID, body})
	return nil
}

type fakeTemplateSource struct {
	tmpl *models.MailTemplate
	err  error
}

func (f *fakeTemplateSource) ActiveTemplate(orgID uuid.UUID, templateType string) (*models.MailTemplate, error) {
	return f.tmpl, f.err
}

func newTestService(notifier *fakeNotifier, tasks *fakeTaskScheduler, audit *fakeAuditLog, now time.Time) *ReminderService {
	return &ReminderService{
		notifier: notifier,
		tasks:    tasks,
		audit:    audit,
		now:      func() time.Time { return now },
	}
}

func testRecord(deadline time.Time, daysBefore int) *models.RemainderRecord {
	return &models.RemainderRecord{
		ID:                     uuid.New(),
		PartnerNumber:          "P-77",
		ProductName:            "CAD License",
		Quantity:               2,
		Price:                  400,
		PurchaseDeadline:       &deadline,
		ReminderRecipientEmail: "renewals@example.com",
		ReminderDaysBefore:     daysBefore,
		ResponsibleUserID:      uuid.New(),
		ResponsibleUser:        models.User{Name: "Dana Reyes"},
		State:                  models.StateDraft,
	}
}

func TestRemindRecordFiresOnTargetDate(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	record := testRecord(today.AddDate(0, 0, 30), 30)

	notifier := &fakeNotifier{}
	tasks := &fakeTaskScheduler{}
	audit := &fakeAuditLog{}
	s := newTestService(notifier, tasks, audit, today)

	org := &models.Organization{ID: uuid.New()}
	tmpl := &models.MailTemplate{ID: uuid.New()}

	fired := s.remindRecord(org, record, tmpl, today)
	require.True(t, fired)

	assert.Equal(t, 1, notifier.calls)

	require.Len(t, tasks.tasks, 1)
	task := tasks.tasks[0]
	assert.Equal(t, record.ID, task.recordID)
	assert.Equal(t, record.ResponsibleUserID, task.assigneeID)
	assert.Equal(t, "DEADLINE ALERT: Follow up on CAD License (Due in 30 days)", task.summary)
	assert.Equal(t, "Reminder email sent to renewals@example.com. Follow up before: 2025-05-31.", task.note)
	assert.Equal(t, today, task.due)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, record.ID, audit.entries[0].recordID)
	assert.Equal(t, "Deadline reminder email sent and activity created for Dana Reyes.", audit.entries[0].body)
}

func TestRemindRecordDoesNotRefireNextDay(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	record := testRecord(today.AddDate(0, 0, 30), 30)

	notifier := &fakeNotifier{}
	tasks := &fakeTaskScheduler{}
	audit := &fakeAuditLog{}
	s := newTestService(notifier, tasks, audit, today)

	org := &models.Organization{ID: uuid.New()}
	tmpl := &models.MailTemplate{ID: uuid.New()}

	require.True(t, s.remindRecord(org, record, tmpl, today))

	// Next day the target no longer matches
	nextDay := today.AddDate(0, 0, 1)
	assert.False(t, s.remindRecord(org, record, tmpl, nextDay))

	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, tasks.tasks, 1)
	assert.Len(t, audit.entries, 1)
}

func TestRemindRecordSkipsOffTargetDates(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	notifier := &fakeNotifier{}
	s := newTestService(notifier, &fakeTaskScheduler{}, &fakeAuditLog{}, today)

	org := &models.Organization{ID: uuid.New()}
	tmpl := &models.MailTemplate{ID: uuid.New()}

	// Deadline 31 days out with a 30-day lead: fires tomorrow, not today
	record := testRecord(today.AddDate(0, 0, 31), 30)
	assert.False(t, s.remindRecord(org, record, tmpl, today))
	assert.Equal(t, 0, notifier.calls)
}

func TestRemindRecordSkipsMissingDeadline(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	record := testRecord(today, 30)
	record.PurchaseDeadline = nil

	notifier := &fakeNotifier{}
	tasks := &fakeTaskScheduler{}
	s := newTestService(notifier, tasks, &fakeAuditLog{}, today)

	assert.False(t, s.remindRecord(&models.Organization{}, record, &models.MailTemplate{}, today))
	assert.Equal(t, 0, notifier.calls)
	assert.Empty(t, tasks.tasks)
}

func TestRemindRecordFailedDispatchSuppressesFollowUps(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	record := testRecord(today.AddDate(0, 0, 7), 7)

	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}
	tasks := &fakeTaskScheduler{}
	audit := &fakeAuditLog{}
	s := newTestService(notifier, tasks, audit, today)

	fired := s.remindRecord(&models.Organization{}, record, &models.MailTemplate{}, today)
	assert.False(t, fired)
	assert.Equal(t, 1, notifier.calls)
	assert.Empty(t, tasks.tasks)
	assert.Empty(t, audit.entries)
}

func TestRemindRecordMatchesEveryLeadTime(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	org := &models.Organization{ID: uuid.New()}
	tmpl := &models.MailTemplate{ID: uuid.New()}

	for _, days := range models.ReminderDayChoices {
		notifier := &fakeNotifier{}
		s := newTestService(notifier, &fakeTaskScheduler{}, &fakeAuditLog{}, today)

		record := testRecord(today.AddDate(0, 0, days), days)
		assert.True(t, s.remindRecord(org, record, tmpl, today), "lead time %d", days)
		assert.Equal(t, 1, notifier.calls)
	}
}

func TestProcessOrganizationWithoutTemplateHasNoSideEffects(t *testing.T) {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	tasks := &fakeTaskScheduler{}
	audit := &fakeAuditLog{}

	// db stays nil: the sweep must bail out before touching records
	s := &ReminderService{
		notifier:  notifier,
		tasks:     tasks,
		audit:     audit,
		templates: &fakeTemplateSource{err: gorm.ErrRecordNotFound},
		now:       func() time.Time { return today },
	}

	s.processOrganization(&models.Organization{ID: uuid.New(), DeadlineReminders: true})

	assert.Equal(t, 0, notifier.calls)
	assert.Empty(t, tasks.tasks)
	assert.Empty(t, audit.entries)
}

func TestRemindRecordFiresAcrossServerTimezones(t *testing.T) {
	// Deadlines are stored as UTC dates but the sweep clock runs in the
	// server's local zone
	ist := time.FixedZone("UTC+5:30", 5*3600+1800)
	today := utils.BeginningOfDay(time.Date(2025, 5, 1, 9, 0, 0, 0, ist))
	deadline := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	record := testRecord(deadline, 30)

	notifier := &fakeNotifier{}
	tasks := &fakeTaskScheduler{}
	audit := &fakeAuditLog{}
	s := newTestService(notifier, tasks, audit, today)

	fired := s.remindRecord(&models.Organization{}, record, &models.MailTemplate{}, today)
	require.True(t, fired)
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, tasks.tasks, 1)
	assert.Len(t, audit.entries, 1)
}

func TestRemindRecordTargetUsesCalendarDays(t *testing.T) {
	// The sweep compares calendar days; the record's clock time is irrelevant
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 5, 31, 18, 45, 0, 0, time.UTC)
	record := testRecord(deadline, 30)

	notifier := &fakeNotifier{}
	s := newTestService(notifier, &fakeTaskScheduler{}, &fakeAuditLog{}, today)

	assert.True(t, s.remindRecord(&models.Organization{}, record, &models.MailTemplate{}, utils.BeginningOfDay(today)))
}
