package models

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestRecomputeTotalValue(t *testing.T) {
	r := RemainderRecord{Quantity: 3, Price: 49.99}
	r.Recompute(time.Now())
	assert.InDelta(t, 149.97, r.TotalValue, 0.001)

	r.Quantity = 10
	r.Recompute(time.Now())
	assert.InDelta(t, 499.90, r.TotalValue, 0.001)
}

func TestRecomputeDaysToDeadline(t *testing.T) {
	now := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)

	r := RemainderRecord{PurchaseDeadline: datePtr(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))}
	r.Recompute(now)
	assert.Equal(t, 30, r.DaysToDeadline)

	r.PurchaseDeadline = nil
	r.Recompute(now)
	assert.Equal(t, 0, r.DaysToDeadline)
}

func TestComputeColorPrecedence(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	future := datePtr(now.AddDate(0, 0, 30))
	soon := datePtr(now.AddDate(0, 0, 5))
	past := datePtr(now.AddDate(0, 0, -1))

	tests := []struct {
		name   string
		record RemainderRecord
		want   int
	}{
		{"cancelled dominates a comfortable deadline", RemainderRecord{State: StateCancelled, PurchaseDeadline: future}, 1},
		{"cancelled dominates an urgent deadline", RemainderRecord{State: StateCancelled, PurchaseDeadline: soon}, 1},
		{"past deadline", RemainderRecord{State: StateConfirmed, PurchaseDeadline: past}, 1},
		{"deadline within 7 days", RemainderRecord{State: StateConfirmed, PurchaseDeadline: soon}, 2},
		{"confirmed on track", RemainderRecord{State: StateConfirmed, PurchaseDeadline: future}, 7},
		{"draft", RemainderRecord{State: StateDraft, PurchaseDeadline: future}, 9},
		{"draft without deadline", RemainderRecord{State: StateDraft}, 9},
		{"unknown state", RemainderRecord{State: RemainderState("archived")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.Recompute(now)
			assert.Equal(t, tt.want, tt.record.ColorIndex)
		})
	}
}

func TestDisplayName(t *testing.T) {
	r := RemainderRecord{ProductName: "Office Suite", PartnerNumber: "P-1042"}
	assert.Equal(t, "Office Suite (P-1042)", r.DisplayName())
}

func TestConfirmFromAnyState(t *testing.T) {
	for _, state := range []RemainderState{StateDraft, StateConfirmed, StateCancelled} {
		r := RemainderRecord{State: state}
		r.Confirm()
		assert.Equal(t, StateConfirmed, r.State)
	}
}

func TestResetToDraft(t *testing.T) {
	r := RemainderRecord{State: StateConfirmed}
	require.NoError(t, r.ResetToDraft())
	assert.Equal(t, StateDraft, r.State)

	r = RemainderRecord{State: StateDraft}
	require.NoError(t, r.ResetToDraft())
	assert.Equal(t, StateDraft, r.State)
}

func TestResetToDraftRejectsCancelled(t *testing.T) {
	r := RemainderRecord{State: StateCancelled}
	err := r.ResetToDraft()
	require.ErrorIs(t, err, ErrCancelledTerminal)
	assert.Equal(t, StateCancelled, r.State)
}

func TestTargetReminderDate(t *testing.T) {
	deadline := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	for _, days := range ReminderDayChoices {
		r := RemainderRecord{PurchaseDeadline: &deadline, ReminderDaysBefore: days}
		target, ok := r.TargetReminderDate()
		require.True(t, ok)
		assert.Equal(t, deadline.AddDate(0, 0, -days), target)
	}

	r := RemainderRecord{ReminderDaysBefore: 30}
	_, ok := r.TargetReminderDate()
	assert.False(t, ok)
}

func TestDeadlineChangeEntry(t *testing.T) {
	oldDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	r := RemainderRecord{ID: uuid.New(), PurchaseDeadline: &oldDate}
	entry := r.DeadlineChangeEntry(&newDate)
	require.NotNil(t, entry)
	assert.Equal(t, r.ID, entry.RecordID)
	assert.Equal(t, "Purchase Deadline Modified: 2025-01-10 → 2025-02-01", entry.Body)
}

func TestDeadlineChangeEntrySkipsNonChanges(t *testing.T) {
	deadline := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	// No new value
	r := RemainderRecord{PurchaseDeadline: &deadline}
	assert.Nil(t, r.DeadlineChangeEntry(nil))

	// No previous value
	r = RemainderRecord{}
	assert.Nil(t, r.DeadlineChangeEntry(&deadline))

	// Same calendar day, different clock time
	sameDay := deadline.Add(9 * time.Hour)
	r = RemainderRecord{PurchaseDeadline: &deadline}
	assert.Nil(t, r.DeadlineChangeEntry(&sameDay))
}

func TestUniquePairIndexIgnoresSoftDeletedRows(t *testing.T) {
	s, err := schema.Parse(&RemainderRecord{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var idx *schema.Index
	for _, i := range s.ParseIndexes() {
		if i.Name == "idx_org_partner_product" {
			idx = i
		}
	}
	require.NotNil(t, idx)
	require.Len(t, idx.Fields, 3)
	// Deleting a record must free the pair for re-creation
	assert.Equal(t, "deleted_at IS NULL", idx.Where)
}

func TestValidReminderDays(t *testing.T) {
	for _, d := range []int{7, 15, 30, 60, 90} {
		assert.True(t, ValidReminderDays(d))
	}
	for _, d := range []int{0, 1, 14, 45, 100} {
		assert.False(t, ValidReminderDays(d))
	}
}
