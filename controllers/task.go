// controllers/task.go
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

// GetTasks lists the caller's follow-up tasks, open ones first
func GetTasks(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	query := config.DB.Where("assignee_id = ?", userUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.FollowUpTask
	if err := query.Order("status ASC, due_date ASC").Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CompleteTask marks a follow-up task as done
func CompleteTask(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	taskUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var task models.FollowUpTask
	if err := config.DB.Where("assignee_id = ? AND id = ?", userUUID, taskUUID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	now := time.Now()
	task.Status = models.TaskStatusDone
	task.CompletedAt = &now

	if err := config.DB.Save(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}
