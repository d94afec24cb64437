package services

import (
	"testing"
	"time"

	"remainderpro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	deadline := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	record := &models.RemainderRecord{
		PartnerNumber:      "P-204",
		ProductName:        "Antivirus Seats",
		Quantity:           25,
		Price:              12,
		PurchaseDeadline:   &deadline,
		ReminderDaysBefore: 15,
		ResponsibleUser:    models.User{Name: "Iris Kovac"},
	}
	record.Recompute(time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	tmpl := &models.MailTemplate{
		Subject: "Renewal: [ProductName] ([PartnerNumber])",
		Body:    "Due [Deadline], in [DaysRemaining] days. Value [TotalValue]. Owner [Responsible].",
	}

	subject, body := RenderTemplate(tmpl, record)
	assert.Equal(t, "Renewal: Antivirus Seats (P-204)", subject)
	assert.Equal(t, "Due 2025-09-15, in 15 days. Value 300.00. Owner Iris Kovac.", body)
}

func TestRenderTemplateMissingDeadline(t *testing.T) {
	record := &models.RemainderRecord{ProductName: "Spare", PartnerNumber: "P-1"}
	tmpl := &models.MailTemplate{Subject: "[Deadline]", Body: "[Deadline]"}

	subject, body := RenderTemplate(tmpl, record)
	assert.Equal(t, "", subject)
	assert.Equal(t, "", body)
}
