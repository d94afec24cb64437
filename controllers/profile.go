// controllers/profile.go
package controllers

import (
	"net/http"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateOrganizationInput struct {
	Name                 *string `json:"name"`
	Address              *string `json:"address"`
	DefaultReminderEmail *string `json:"defaultReminderEmail"`
	DeadlineReminders    *bool   `json:"deadlineReminders"`
	SMSNotifications     *bool   `json:"smsNotifications"`
}

func GetProfile(c *gin.Context) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization not found")
		return
	}

	var org models.Organization
	if err := config.DB.Preload("Currency").First(&org, "id = ?", orgID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Organization not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                 org.Name,
		"address":              org.Address,
		"currency":             org.Currency.Code,
		"defaultReminderEmail": org.DefaultReminderEmail,
		"deadlineReminders":    org.DeadlineReminders,
		"smsNotifications":     org.SMSNotifications,
	})
}

func UpdateOrganizationProfile(c *gin.Context) {
	orgID, exists := c.Get("orgId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Organization not found")
		return
	}

	var input UpdateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var org models.Organization
	if err := config.DB.First(&org, "id = ?", orgID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Organization not found")
		return
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Address != nil {
		org.Address = *input.Address
	}
	if input.DefaultReminderEmail != nil {
		if !utils.ValidateEmail(*input.DefaultReminderEmail) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
			return
		}
		org.DefaultReminderEmail = *input.DefaultReminderEmail
	}
	if input.DeadlineReminders != nil {
		org.DeadlineReminders = *input.DeadlineReminders
	}
	if input.SMSNotifications != nil {
		org.SMSNotifications = *input.SMSNotifications
	}

	if err := config.DB.Save(&org).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update organization")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization updated successfully"})
}
