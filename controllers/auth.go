// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email                string `json:"email" binding:"required,email"`
	Name                 string `json:"name" binding:"required"`
	Phone                string `json:"phone"`
	Password             string `json:"password" binding:"required,min=8"`
	OrganizationName     string `json:"organizationName" binding:"required"`
	OrganizationAddress  string `json:"organizationAddress"`
	CurrencyCode         string `json:"currencyCode"`
	DefaultReminderEmail string `json:"defaultReminderEmail"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	currencyCode := strings.ToUpper(strings.TrimSpace(input.CurrencyCode))
	if currencyCode == "" {
		currencyCode = "USD"
	}
	var currency models.Currency
	if err := config.DB.Where("code = ?", currencyCode).First(&currency).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown currency code")
		return
	}

	defaultEmail := input.DefaultReminderEmail
	if defaultEmail == "" {
		defaultEmail = input.Email
	}

	org := models.Organization{
		ID:                   uuid.New(),
		Name:                 input.OrganizationName,
		Address:              input.OrganizationAddress,
		CurrencyID:           currency.ID,
		DefaultReminderEmail: defaultEmail,
		DeadlineReminders:    true,
	}
	if err := config.DB.Create(&org).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create organization")
		return
	}

	newUser := models.User{
		Email:          input.Email,
		Name:           input.Name,
		Phone:          input.Phone,
		Password:       input.Password, // Hashed in BeforeCreate hook
		Role:           "owner",
		OrganizationID: org.ID,
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := createDefaultDeadlineTemplate(org.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create default template")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), org.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":           newUser.ID,
			"email":        newUser.Email,
			"name":         newUser.Name,
			"organization": org.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", strings.TrimSpace(input.Email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.OrganizationID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.Preload("Organization").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"phone":        user.Phone,
		"role":         user.Role,
		"organization": user.Organization.Name,
	})
}

func createDefaultDeadlineTemplate(orgID uuid.UUID) error {
	template := models.MailTemplate{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Type:           models.TemplateTypeDeadline,
		Subject:        "Renewal reminder: [ProductName] ([PartnerNumber]) due [Deadline]",
		Body: "The purchase deadline for [ProductName] ([PartnerNumber]) is [Deadline], " +
			"[DaysRemaining] days from now. Total value: [TotalValue]. " +
			"Responsible: [Responsible].",
		IsActive: true,
	}
	return config.DB.Create(&template).Error
}
