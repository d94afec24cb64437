package models

import (
	"errors"
	"fmt"
	"remainderpro-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RemainderState is the workflow state of a remainder record.
type RemainderState string

const (
	StateDraft     RemainderState = "draft"
	StateConfirmed RemainderState = "confirmed"
	StateCancelled RemainderState = "cancelled"
)

// ErrCancelledTerminal is returned when a cancelled record is reset to draft.
// Cancellation is irreversible; users must create a new record instead.
var ErrCancelledTerminal = errors.New("cannot reset a cancelled reminder to draft; please create a new record instead")

// Reminder timing choices, in days before the purchase deadline.
var ReminderDayChoices = []int{7, 15, 30, 60, 90}

// RemainderRecord tracks a product/license renewal deadline for a partner.
// The (partner_number, product_name) pair is unique per organization.
type RemainderRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_partner_product,priority:1,where:deleted_at IS NULL" json:"organizationId"`

	PartnerNumber string `gorm:"not null;uniqueIndex:idx_org_partner_product,priority:2" json:"partnerNumber"`
	ProductName   string `gorm:"not null;uniqueIndex:idx_org_partner_product,priority:3" json:"productName"`

	Quantity float64 `gorm:"default:1.0" json:"quantity"`
	Price    float64 `gorm:"type:decimal(12,2);not null" json:"price"`

	PurchaseDeadline *time.Time `gorm:"type:date" json:"purchaseDeadline"`

	ReminderRecipientEmail string `json:"reminderRecipientEmail"`
	ReminderDaysBefore     int    `gorm:"default:30" json:"reminderDaysBefore"`

	ResponsibleUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"responsibleUserId"`
	ResponsibleUser   User      `gorm:"foreignKey:ResponsibleUserID" json:"-"`

	CurrencyID uuid.UUID `gorm:"type:uuid;index" json:"currencyId"`
	Currency   Currency  `gorm:"foreignKey:CurrencyID" json:"-"`

	State RemainderState `gorm:"type:varchar(20);not null;default:'draft'" json:"state"`

	// Derived fields. TotalValue is stored; the other two depend on the
	// current date and are refreshed on every load.
	TotalValue     float64 `gorm:"type:decimal(14,2)" json:"totalValue"`
	DaysToDeadline int     `gorm:"-" json:"daysToDeadline"`
	ColorIndex     int     `gorm:"-" json:"colorIndex"`

	AuditEntries []AuditEntry `gorm:"foreignKey:RecordID" json:"-"`

	gorm.Model
}

func (r *RemainderRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (r *RemainderRecord) BeforeSave(tx *gorm.DB) (err error) {
	r.Recompute(time.Now())
	return
}

func (r *RemainderRecord) AfterFind(tx *gorm.DB) (err error) {
	r.Recompute(time.Now())
	return
}

// Recompute refreshes the derived fields from their source fields.
// Idempotent; safe to call any number of times.
func (r *RemainderRecord) Recompute(now time.Time) {
	r.TotalValue = r.Quantity * r.Price

	if r.PurchaseDeadline != nil {
		r.DaysToDeadline = utils.DaysBetween(now, *r.PurchaseDeadline)
	} else {
		r.DaysToDeadline = 0
	}

	r.ColorIndex = r.computeColor(now)
}

// computeColor picks the kanban color index. First match wins:
// 1 (red) cancelled or past deadline, 2 (orange) deadline within 7 days,
// 7 (green) confirmed, 9 (blue) draft, 0 otherwise.
func (r *RemainderRecord) computeColor(now time.Time) int {
	switch {
	case r.State == StateCancelled:
		return 1
	case r.PurchaseDeadline != nil && utils.DaysBetween(now, *r.PurchaseDeadline) < 0:
		return 1
	case r.PurchaseDeadline != nil && utils.DaysBetween(now, *r.PurchaseDeadline) <= 7:
		return 2
	case r.State == StateConfirmed:
		return 7
	case r.State == StateDraft:
		return 9
	default:
		return 0
	}
}

// DisplayName is the human-readable label shown instead of the record ID.
func (r *RemainderRecord) DisplayName() string {
	return fmt.Sprintf("%s (%s)", r.ProductName, r.PartnerNumber)
}

// Confirm moves the record to confirmed. No precondition.
func (r *RemainderRecord) Confirm() {
	r.State = StateConfirmed
}

// ResetToDraft moves the record back to draft. Cancelled records are
// terminal and are rejected.
func (r *RemainderRecord) ResetToDraft() error {
	if r.State == StateCancelled {
		return ErrCancelledTerminal
	}
	r.State = StateDraft
	return nil
}

// DeadlineChangeEntry builds the audit entry for an update that moves a
// previously set purchase deadline. Returns nil when no entry is due: no
// change, no new value, or no previous value.
func (r *RemainderRecord) DeadlineChangeEntry(newDeadline *time.Time) *AuditEntry {
	if newDeadline == nil || r.PurchaseDeadline == nil || utils.SameDay(*r.PurchaseDeadline, *newDeadline) {
		return nil
	}
	return &AuditEntry{
		RecordID: r.ID,
		Body: fmt.Sprintf("Purchase Deadline Modified: %s → %s",
			utils.FormatDate(*r.PurchaseDeadline), utils.FormatDate(*newDeadline)),
	}
}

// TargetReminderDate is the single day this record's reminder fires:
// purchase deadline minus the configured lead time. ok is false when no
// deadline is set.
func (r *RemainderRecord) TargetReminderDate() (target time.Time, ok bool) {
	if r.PurchaseDeadline == nil {
		return time.Time{}, false
	}
	return utils.BeginningOfDay(*r.PurchaseDeadline).AddDate(0, 0, -r.ReminderDaysBefore), true
}

// ValidReminderDays reports whether d is one of the allowed lead times.
func ValidReminderDays(d int) bool {
	for _, c := range ReminderDayChoices {
		if c == d {
			return true
		}
	}
	return false
}
