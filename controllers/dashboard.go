package controllers

import (
	"net/http"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type dailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ChartData feeds the dashboard charts: daily visitor and purchase counts
// for the trailing week, plus bill counts per payment status.
type ChartData struct {
	Labels    []string        `json:"labels"`
	Visitors  []int64         `json:"visitors"`
	Purchases []int64         `json:"purchases"`
	Payments  PaymentStatuses `json:"payments"`
}

type PaymentStatuses struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// GetChartData returns the 7-day visitor/purchase series and the payment
// status buckets
func GetChartData(c *gin.Context) {
	now := time.Now()
	weekStart := utils.BeginningOfDay(now).AddDate(0, 0, -6)

	var dailyVisitors []dailyCount
	if err := config.DB.Raw(`
		SELECT TO_CHAR(last_visit, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM customers
		WHERE last_visit >= ?
		GROUP BY day
		ORDER BY day
	`, weekStart).Scan(&dailyVisitors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch chart data")
		return
	}

	var dailyBills []dailyCount
	if err := config.DB.Raw(`
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM bills
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day
	`, weekStart).Scan(&dailyBills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch chart data")
		return
	}

	visitorsByDay := make(map[string]int64, len(dailyVisitors))
	for _, row := range dailyVisitors {
		visitorsByDay[row.Day] = row.Count
	}
	billsByDay := make(map[string]int64, len(dailyBills))
	for _, row := range dailyBills {
		billsByDay[row.Day] = row.Count
	}

	labels := make([]string, 0, 7)
	visitors := make([]int64, 0, 7)
	purchases := make([]int64, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		key := date.Format("2006-01-02")
		labels = append(labels, date.Weekday().String())
		visitors = append(visitors, visitorsByDay[key])
		purchases = append(purchases, billsByDay[key])
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statusRows []statusCount
	if err := config.DB.Model(&models.Bill{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&statusRows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch chart data")
		return
	}

	countsByStatus := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		countsByStatus[row.Status] = row.Count
	}

	statusLabels := []string{models.StatusPaid, models.StatusPartial, models.StatusUnpaid}
	statusData := make([]int64, len(statusLabels))
	for i, label := range statusLabels {
		statusData[i] = countsByStatus[label]
	}

	c.JSON(http.StatusOK, ChartData{
		Labels:    labels,
		Visitors:  visitors,
		Purchases: purchases,
		Payments: PaymentStatuses{
			Labels: statusLabels,
			Data:   statusData,
		},
	})
}
