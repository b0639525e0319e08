// File: /controllers/report_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
	"notedefrais-api/repositories"
	"notedefrais-api/services"
)

type ReportController struct {
	db      *gorm.DB
	trips   *repositories.TripRepository
	rates   *repositories.RateRepository
	exports *services.ExportService
}

func NewReportController(db *gorm.DB, exports *services.ExportService) *ReportController {
	return &ReportController{
		db:      db,
		trips:   repositories.NewTripRepository(db),
		rates:   repositories.NewRateRepository(db),
		exports: exports,
	}
}

// parseMonthParams reads ?year=&month= and writes the error response itself
// when they are missing or out of range
func parseMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid year query parameter required"})
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid month query parameter required (1-12)"})
		return 0, 0, false
	}

	return year, time.Month(month), true
}

// buildMonthlySummary loads the month's snapshot and runs the aggregator
func (rc *ReportController) buildMonthlySummary(c *gin.Context, userID string, year int, month time.Month) (calculator.MonthlySummary, bool) {
	trips, err := rc.trips.ListTripsForMonth(userID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return calculator.MonthlySummary{}, false
	}

	rules, err := rc.rates.ListVehicleRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rules"})
		return calculator.MonthlySummary{}, false
	}

	missionRates, err := rc.rates.ListApprovedMissionRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mission rates"})
		return calculator.MonthlySummary{}, false
	}

	return calculator.AggregateMonth(trips, rules, missionRates, year, month), true
}

// GetMonthlyReport returns the monthly recap as JSON
func (rc *ReportController) GetMonthlyReport(c *gin.Context) {
	userID := c.GetString("user_id")

	year, month, ok := parseMonthParams(c)
	if !ok {
		return
	}

	summary, ok := rc.buildMonthlySummary(c, userID, year, month)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportMonthlyCSV streams the monthly recap as a CSV spreadsheet
func (rc *ReportController) ExportMonthlyCSV(c *gin.Context) {
	userID := c.GetString("user_id")

	year, month, ok := parseMonthParams(c)
	if !ok {
		return
	}

	summary, ok := rc.buildMonthlySummary(c, userID, year, month)
	if !ok {
		return
	}

	var user models.User
	if err := rc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	data, err := rc.exports.GenerateMonthlyCSV(summary, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSV export"})
		return
	}

	filename := rc.exports.MonthlyReportFilename(year, month, "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportMonthlyPDF streams the monthly recap as a PDF document
func (rc *ReportController) ExportMonthlyPDF(c *gin.Context) {
	userID := c.GetString("user_id")

	year, month, ok := parseMonthParams(c)
	if !ok {
		return
	}

	summary, ok := rc.buildMonthlySummary(c, userID, year, month)
	if !ok {
		return
	}

	var user models.User
	if err := rc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	data, err := rc.exports.GenerateMonthlyPDF(summary, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF export"})
		return
	}

	filename := rc.exports.MonthlyReportFilename(year, month, "pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
