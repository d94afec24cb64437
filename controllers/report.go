// controllers/report.go
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

// ReportController handles all reporting functions
type ReportController struct{}

// DeadlineReport represents the deadline analytics data
type DeadlineReport struct {
	MonthlyDeadlines []MonthlyDeadline `json:"monthlyDeadlines"`
	TopPartners      []PartnerSummary  `json:"topPartners"`
	QuickStats       QuickStatistics   `json:"quickStats"`
}

type MonthlyDeadline struct {
	Month string  `json:"month"` // YYYY-MM
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type PartnerSummary struct {
	PartnerNumber string  `json:"partnerNumber"`
	Records       int     `json:"records"`
	Value         float64 `json:"value"`
}

type QuickStatistics struct {
	TotalRecords    int64   `json:"totalRecords"`
	OpenTasks       int64   `json:"openTasks"`
	RemindersSent   int64   `json:"remindersSent"`
	RemindersFailed int64   `json:"remindersFailed"`
	AvgRecordValue  float64 `json:"avgRecordValue"`
}

// GetDeadlineReport returns the complete deadline analytics summary
func (rc *ReportController) GetDeadlineReport(c *gin.Context) {
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

	var report DeadlineReport

	// Upcoming deadlines grouped by month, next 12 months
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Raw(`
        SELECT TO_CHAR(purchase_deadline, 'YYYY-MM') AS month,
               COUNT(*) AS count,
               COALESCE(SUM(total_value), 0) AS value
        FROM remainder_records
        WHERE organization_id = ? AND deleted_at IS NULL
        AND state IN ('draft', 'confirmed')
        AND purchase_deadline >= ? AND purchase_deadline < ?
        GROUP BY 1 ORDER BY 1
    `, orgUUID, firstOfMonth, firstOfMonth.AddDate(1, 0, 0)).Scan(&report.MonthlyDeadlines)

	// Partners ranked by pipeline value
	config.DB.Raw(`
        SELECT partner_number, COUNT(*) AS records, COALESCE(SUM(total_value), 0) AS value
        FROM remainder_records
        WHERE organization_id = ? AND deleted_at IS NULL
        AND state IN ('draft', 'confirmed')
        GROUP BY partner_number ORDER BY value DESC LIMIT 5
    `, orgUUID).Scan(&report.TopPartners)

	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND deleted_at IS NULL", orgUUID).
		Count(&report.QuickStats.TotalRecords)

	config.DB.Model(&models.FollowUpTask{}).
		Joins("JOIN remainder_records ON remainder_records.id = follow_up_tasks.record_id").
		Where("remainder_records.organization_id = ? AND follow_up_tasks.status = ?", orgUUID, models.TaskStatusOpen).
		Count(&report.QuickStats.OpenTasks)

	config.DB.Model(&models.DispatchLog{}).
		Where("organization_id = ? AND status = ?", orgUUID, "sent").
		Count(&report.QuickStats.RemindersSent)
	config.DB.Model(&models.DispatchLog{}).
		Where("organization_id = ? AND status = ?", orgUUID, "failed").
		Count(&report.QuickStats.RemindersFailed)

	config.DB.Model(&models.RemainderRecord{}).
		Where("organization_id = ? AND deleted_at IS NULL", orgUUID).
		Select("COALESCE(AVG(total_value), 0)").Scan(&report.QuickStats.AvgRecordValue)

	c.JSON(http.StatusOK, report)
}
