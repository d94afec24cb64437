// controllers/partner.go
package controllers

import (
	"errors"
	"net/http"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePartnerInput defines the expected JSON structure for creating a partner
type CreatePartnerInput struct {
	Number string `json:"number" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Notes  string `json:"notes"`
}

// UpdatePartnerInput defines the expected JSON structure for updating a partner
type UpdatePartnerInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// CreatePartner creates a new partner directory entry
func CreatePartner(c *gin.Context) {
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

	var input CreatePartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Email != "" && !utils.ValidateEmail(input.Email) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.Partner
	if err := config.DB.Where("organization_id = ? AND number = ?", orgUUID, input.Number).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Partner with this number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	partner := models.Partner{
		ID:              uuid.New(),
		OrganizationID:  orgUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Number:          input.Number,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Notes:           input.Notes,
		IsActive:        true,
	}

	if err := config.DB.Create(&partner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create partner")
		return
	}

	c.JSON(http.StatusCreated, partner)
}

// GetPartners retrieves all partners for the organization
func GetPartners(c *gin.Context) {
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

	var partners []models.Partner
	if err := config.DB.Where("organization_id = ?", orgUUID).Find(&partners).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve partners")
		return
	}

	c.JSON(http.StatusOK, partners)
}

// UpdatePartner updates an existing partner
func UpdatePartner(c *gin.Context) {
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

	partnerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid partner ID format")
		return
	}

	var input UpdatePartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var partner models.Partner
	if err := config.DB.Where("organization_id = ? AND id = ?", orgUUID, partnerUUID).
		First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Partner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		partner.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email != "" && !utils.ValidateEmail(*input.Email) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
			return
		}
		partner.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		partner.Phone = *input.Phone
	}
	if input.Notes != nil {
		partner.Notes = *input.Notes
	}
	if input.IsActive != nil {
		partner.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&partner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update partner")
		return
	}

	c.JSON(http.StatusOK, partner)
}

// DeletePartner soft deletes a partner
func DeletePartner(c *gin.Context) {
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

	partnerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid partner ID format")
		return
	}

	result := config.DB.Where("organization_id = ? AND id = ?", orgUUID, partnerUUID).
		Delete(&models.Partner{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete partner")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Partner not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted successfully"})
}
