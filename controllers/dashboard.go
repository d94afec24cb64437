// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"remainderpro-backend/config"
	"remainderpro-backend/models"
	"remainderpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalRecords     int64            `json:"totalRecords"`
	DraftRecords     int64            `json:"draftRecords"`
	ConfirmedRecords int64            `json:"confirmedRecords"`
	CancelledRecords int64            `json:"cancelledRecords"`
	PipelineValue    float64          `json:"pipelineValue"`
	OverdueRecords   int64            `json:"overdueRecords"`
	UrgentRecords    []UrgentRecord   `json:"urgentRecords"`
	RecentDispatches []RecentDispatch `json:"recentDispatches"`
}

type UrgentRecord struct {
	DisplayName    string `json:"displayName"`
	DaysToDeadline int    `json:"daysToDeadline"`
	State          string `json:"state"`
}

type RecentDispatch struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"sentAt"`
}

func GetDashboardOverview(c *gin.Context) {
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

	var overview DashboardOverview

	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND deleted_at IS NULL", orgUUID).Count(&overview.TotalRecords)
	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND state = ? AND deleted_at IS NULL", orgUUID, models.StateDraft).
		Count(&overview.DraftRecords)
	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND state = ? AND deleted_at IS NULL", orgUUID, models.StateConfirmed).
		Count(&overview.ConfirmedRecords)
	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND state = ? AND deleted_at IS NULL", orgUUID, models.StateCancelled).
		Count(&overview.CancelledRecords)

	// Pipeline = total value of records still in play
	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND state IN ? AND deleted_at IS NULL", orgUUID,
			[]models.RemainderState{models.StateDraft, models.StateConfirmed}).
		Select("COALESCE(SUM(total_value), 0)").Scan(&overview.PipelineValue)

	today := utils.BeginningOfDay(time.Now())
	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND state IN ? AND purchase_deadline < ? AND deleted_at IS NULL",
			orgUUID, []models.RemainderState{models.StateDraft, models.StateConfirmed}, today).
		Count(&overview.OverdueRecords)

	// Records whose deadline is within the next 7 days
	var urgent []models.RemainderRecord
	config.DB.Where("organization_id = ? AND state IN ? AND purchase_deadline BETWEEN ? AND ? AND deleted_at IS NULL",
		orgUUID, []models.RemainderState{models.StateDraft, models.StateConfirmed},
		today, today.AddDate(0, 0, 7)).
		Order("purchase_deadline ASC").Limit(7).Find(&urgent)
	for i := range urgent {
		overview.UrgentRecords = append(overview.UrgentRecords, UrgentRecord{
			DisplayName:    urgent[i].DisplayName(),
			DaysToDeadline: urgent[i].DaysToDeadline,
			State:          string(urgent[i].State),
		})
	}

	var dispatches []models.DispatchLog
	config.DB.Where("organization_id = ?", orgUUID).
		Order("sent_at DESC").Limit(5).Find(&dispatches)
	for _, d := range dispatches {
		overview.RecentDispatches = append(overview.RecentDispatches, RecentDispatch{
			Recipient: d.Recipient,
			Subject:   d.Subject,
			Status:    d.Status,
			SentAt:    d.SentAt,
		})
	}

	c.JSON(http.StatusOK, overview)
}
