// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"
	"strconv"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// MailNotifier sends reminder emails over SMTP and, when the organization
// opted in and Twilio is configured, an SMS copy to the responsible user.
// Every attempt is recorded in the dispatch log.
type MailNotifier struct {
	db     *gorm.DB
	dialer *gomail.Dialer
	from   string
	sms    *twilio.RestClient
}

func NewMailNotifier(db *gorm.DB) *MailNotifier {
	port := 587
	if env := os.Getenv("SMTP_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}

	var sms *twilio.RestClient
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}

	return &MailNotifier{
		db:     db,
		dialer: gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD")),
		from:   os.Getenv("MAIL_FROM"),
		sms:    sms,
	}
}

func (n *MailNotifier) Notify(org *models.Organization, record *models.RemainderRecord, tmpl *models.MailTemplate) error {
	subject, body := RenderTemplate(tmpl, record)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", record.ReminderRecipientEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// DialAndSend is synchronous: the reminder is delivered immediately,
	// never queued.
	err := n.dialer.DialAndSend(m)

	status := "sent"
	errorMsg := ""
	if err != nil {
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.DispatchLog{
		OrganizationID: org.ID,
		RecordID:       record.ID,
		TemplateID:     tmpl.ID,
		Recipient:      record.ReminderRecipientEmail,
		Subject:        subject,
		Status:         status,
		ErrorMessage:   errorMsg,
		Channel:        "email",
		SentAt:         time.Now(),
	}
	if dbErr := n.db.Create(&entry).Error; dbErr != nil {
		log.Printf("Failed to log dispatch for %s: %v", record.DisplayName(), dbErr)
	}

	if err != nil {
		return err
	}

	n.sendSMSCopy(org, record, subject)
	return nil
}

// sendSMSCopy pushes a short alert to the responsible user's phone.
// Best effort: failures are logged, never surfaced.
func (n *MailNotifier) sendSMSCopy(org *models.Organization, record *models.RemainderRecord, subject string) {
	if n.sms == nil || !org.SMSNotifications {
		return
	}
	if record.ResponsibleUser.Phone == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(record.ResponsibleUser.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(subject)

	resp, err := n.sms.Api.CreateMessage(params)

	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("Failed to send SMS copy to %s: %v", record.ResponsibleUser.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("SMS copy sent to %s, SID: %s", record.ResponsibleUser.Phone, *resp.Sid)
	}

	entry := models.DispatchLog{
		OrganizationID: org.ID,
		RecordID:       record.ID,
		Recipient:      record.ResponsibleUser.Phone,
		Subject:        subject,
		Status:         status,
		ErrorMessage:   errorMsg,
		Channel:        "sms",
		SentAt:         time.Now(),
	}
	if dbErr := n.db.Create(&entry).Error; dbErr != nil {
		log.Printf("Failed to log SMS dispatch for %s: %v", record.DisplayName(), dbErr)
	}
}

// RenderTemplate substitutes the record's fields into a template's subject
// and body.
func RenderTemplate(tmpl *models.MailTemplate, record *models.RemainderRecord) (subject, body string) {
	deadline := ""
	if record.PurchaseDeadline != nil {
		deadline = utils.FormatDate(*record.PurchaseDeadline)
	}

	replacer := strings.NewReplacer(
		"[ProductName]", record.ProductName,
		"[PartnerNumber]", record.PartnerNumber,
		"[Deadline]", deadline,
		"[DaysRemaining]", strconv.Itoa(record.ReminderDaysBefore),
		"[TotalValue]", fmt.Sprintf("%.2f", record.TotalValue),
		"[Responsible]", record.ResponsibleUser.Name,
	)
	return replacer.Replace(tmpl.Subject), replacer.Replace(tmpl.Body)
}
