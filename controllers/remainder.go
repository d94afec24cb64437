// controllers/remainder.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicatePairMessage = "A reminder already exists for this Partner Number and Product Name combination. Please check your existing records."

// CreateRemainderInput defines the expected JSON structure for creating a record
type CreateRemainderInput struct {
	PartnerNumber          string     `json:"partnerNumber" binding:"required"`
	ProductName            string     `json:"productName" binding:"required"`
	Quantity               *float64   `json:"quantity"`
	Price                  float64    `json:"price" binding:"required"`
	PurchaseDeadline       *time.Time `json:"purchaseDeadline" binding:"required"`
	ReminderRecipientEmail *string    `json:"reminderRecipientEmail"`
	ReminderDaysBefore     *int       `json:"reminderDaysBefore" binding:"omitempty,oneof=7 15 30 60 90"`
	ResponsibleUserID      *string    `json:"responsibleUserId"`
	CurrencyID             *string    `json:"currencyId"`
}

// UpdateRemainderInput defines the expected JSON structure for updating a record
type UpdateRemainderInput struct {
	PartnerNumber          *string    `json:"partnerNumber"`
	ProductName            *string    `json:"productName"`
	Quantity               *float64   `json:"quantity"`
	Price                  *float64   `json:"price"`
	PurchaseDeadline       *time.Time `json:"purchaseDeadline"`
	ReminderRecipientEmail *string    `json:"reminderRecipientEmail"`
	ReminderDaysBefore     *int       `json:"reminderDaysBefore" binding:"omitempty,oneof=7 15 30 60 90"`
	ResponsibleUserID      *string    `json:"responsibleUserId"`
	State                  *string    `json:"state" binding:"omitempty,oneof=draft confirmed cancelled"`
}

// CreateRemainder creates a new remainder record
func CreateRemainder(c *gin.Context) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization ID not found in context")
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	orgUUID, err := uuid.Parse(orgID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid organization ID format")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateRemainderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// The (partner number, product name) pair must be unique
	var existing models.RemainderRecord
	if err := config.DB.Where("organization_id = ? AND partner_number = ? AND product_name = ?",
		orgUUID, input.PartnerNumber, input.ProductName).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, duplicatePairMessage)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var org models.Organization
	if err := config.DB.First(&org, "id = ?", orgUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Organization not found")
		return
	}

	record := models.RemainderRecord{
		ID:                 uuid.New(),
		OrganizationID:     orgUUID,
		PartnerNumber:      input.PartnerNumber,
		ProductName:        input.ProductName,
		Quantity:           1.0,
		Price:              input.Price,
		PurchaseDeadline:   input.PurchaseDeadline,
		ReminderDaysBefore: 30,
		ResponsibleUserID:  userUUID,
		CurrencyID:         org.CurrencyID,
		State:              models.StateDraft,
	}

	if input.Quantity != nil {
		record.Quantity = *input.Quantity
	}
	if input.ReminderDaysBefore != nil {
		record.ReminderDaysBefore = *input.ReminderDaysBefore
	}
	if input.ResponsibleUserID != nil {
		responsibleUUID, err := uuid.Parse(*input.ResponsibleUserID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid responsible user ID format")
			return
		}
		record.ResponsibleUserID = responsibleUUID
	}
	if input.CurrencyID != nil {
		currencyUUID, err := uuid.Parse(*input.CurrencyID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid currency ID format")
			return
		}
		record.CurrencyID = currencyUUID
	}

	// Recipient default: explicit input, then the partner's email, then the
	// organization default.
	switch {
	case input.ReminderRecipientEmail != nil:
		if !utils.ValidateEmail(*input.ReminderRecipientEmail) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid recipient email format")
			return
		}
		record.ReminderRecipientEmail = *input.ReminderRecipientEmail
	default:
		var partner models.Partner
		if err := config.DB.Where("organization_id = ? AND number = ?", orgUUID, input.PartnerNumber).
			First(&partner).Error; err == nil && partner.Email != "" {
			record.ReminderRecipientEmail = partner.Email
		} else {
			record.ReminderRecipientEmail = org.DefaultReminderEmail
		}
	}

	if err := config.DB.Create(&record).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, duplicatePairMessage)
		return
	}

	c.JSON(http.StatusCreated, recordResponse(&record))
}

// GetRemainders retrieves all remainder records for the organization,
// optionally filtered by state
func GetRemainders(c *gin.Context) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization ID not found in context")
		return
	}

	orgUUID, err := uuid.Parse(orgID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid organization ID format")
		return
	}

	query := config.DB.Preload("ResponsibleUser").Preload("Currency").Where("organization_id = ?", orgUUID)
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var records []models.RemainderRecord
	if err := query.Order("purchase_deadline ASC").Find(&records).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve records")
		return
	}

	out := make([]gin.H, 0, len(records))
	for i := range records {
		out = append(out, recordResponse(&records[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetRemainder retrieves a specific record by ID
func GetRemainder(c *gin.Context) {
	record, ok := findOrgRecord(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recordResponse(record))
}

// UpdateRemainder updates an existing record. A change to a previously set
// purchase deadline is written to the audit log before persisting. One
// record per call; there is no batch update.
func UpdateRemainder(c *gin.Context) {
	record, ok := findOrgRecord(c, false)
	if !ok {
		return
	}

	var input UpdateRemainderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Uniqueness check when the identifying pair changes
	newPartner := record.PartnerNumber
	newProduct := record.ProductName
	if input.PartnerNumber != nil {
		newPartner = *input.PartnerNumber
	}
	if input.ProductName != nil {
		newProduct = *input.ProductName
	}
	if newPartner != record.PartnerNumber || newProduct != record.ProductName {
		var existing models.RemainderRecord
		if err := config.DB.Where("organization_id = ? AND partner_number = ? AND product_name = ? AND id <> ?",
			record.OrganizationID, newPartner, newProduct, record.ID).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, duplicatePairMessage)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Cancelled is terminal: a generic state edit cannot bring the record
	// back to draft either.
	if input.State != nil {
		next := models.RemainderState(*input.State)
		if record.State == models.StateCancelled && next == models.StateDraft {
			utils.RespondWithError(c, http.StatusUnprocessableEntity, models.ErrCancelledTerminal.Error())
			return
		}
		record.State = next
	}

	// Audit a modified deadline before persisting
	if entry := record.DeadlineChangeEntry(input.PurchaseDeadline); entry != nil {
		if err := config.DB.Create(entry).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write audit entry")
			return
		}
	}

	record.PartnerNumber = newPartner
	record.ProductName = newProduct
	if input.Quantity != nil {
		record.Quantity = *input.Quantity
	}
	if input.Price != nil {
		record.Price = *input.Price
	}
	if input.PurchaseDeadline != nil {
		record.PurchaseDeadline = input.PurchaseDeadline
	}
	if input.ReminderRecipientEmail != nil {
		if !utils.ValidateEmail(*input.ReminderRecipientEmail) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid recipient email format")
			return
		}
		record.ReminderRecipientEmail = *input.ReminderRecipientEmail
	}
	if input.ReminderDaysBefore != nil {
		record.ReminderDaysBefore = *input.ReminderDaysBefore
	}
	if input.ResponsibleUserID != nil {
		responsibleUUID, err := uuid.Parse(*input.ResponsibleUserID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid responsible user ID format")
			return
		}
		record.ResponsibleUserID = responsibleUUID
	}

	if err := config.DB.Save(record).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update record")
		return
	}

	c.JSON(http.StatusOK, recordResponse(record))
}

// DeleteRemainder soft deletes a record
func DeleteRemainder(c *gin.Context) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization ID not found in context")
		return
	}

	orgUUID, err := uuid.Parse(orgID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid organization ID format")
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	result := config.DB.Where("organization_id = ? AND id = ?", orgUUID, recordUUID).
		Delete(&models.RemainderRecord{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete record")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Record not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// ConfirmRemainder moves a record to confirmed
func ConfirmRemainder(c *gin.Context) {
	record, ok := findOrgRecord(c, false)
	if !ok {
		return
	}

	record.Confirm()
	if err := config.DB.Save(record).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update record")
		return
	}

	c.JSON(http.StatusOK, recordResponse(record))
}

// ResetRemainderToDraft moves a record back to draft. Cancelled records
// are rejected.
func ResetRemainderToDraft(c *gin.Context) {
	record, ok := findOrgRecord(c, false)
	if !ok {
		return
	}

	if err := record.ResetToDraft(); err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := config.DB.Save(record).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update record")
		return
	}

	c.JSON(http.StatusOK, recordResponse(record))
}

// GetRemainderAudit lists a record's audit entries, newest first
func GetRemainderAudit(c *gin.Context) {
	record, ok := findOrgRecord(c, false)
	if !ok {
		return
	}

	var entries []models.AuditEntry
	if err := config.DB.Where("record_id = ?", record.ID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve audit entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// findOrgRecord loads the record addressed by the :id param, scoped to the
// caller's organization. Writes the error response itself on failure.
func findOrgRecord(c *gin.Context, preload bool) (*models.RemainderRecord, bool) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization ID not found in context")
		return nil, false
	}

	orgUUID, err := uuid.Parse(orgID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid organization ID format")
		return nil, false
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return nil, false
	}

	query := config.DB.Where("organization_id = ? AND id = ?", orgUUID, recordUUID)
	if preload {
		query = query.Preload("ResponsibleUser").Preload("Currency")
	}

	var record models.RemainderRecord
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	return &record, true
}

// recordResponse is the JSON shape for a record, including its display name
func recordResponse(record *models.RemainderRecord) gin.H {
	return gin.H{
		"id":                     record.ID,
		"displayName":            record.DisplayName(),
		"partnerNumber":          record.PartnerNumber,
		"productName":            record.ProductName,
		"quantity":               record.Quantity,
		"price":                  record.Price,
		"purchaseDeadline":       record.PurchaseDeadline,
		"reminderRecipientEmail": record.ReminderRecipientEmail,
		"reminderDaysBefore":     record.ReminderDaysBefore,
		"responsibleUserId":      record.ResponsibleUserID,
		"currencyId":             record.CurrencyID,
		"state":                  record.State,
		"daysToDeadline":         record.DaysToDeadline,
		"totalValue":             record.TotalValue,
		"colorIndex":             record.ColorIndex,
	}
}
