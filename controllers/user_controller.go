// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
	"notedefrais-api/repositories"
)

type UserController struct {
	db    *gorm.DB
	trips *repositories.TripRepository
	rates *repositories.RateRepository
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		db:    db,
		trips: repositories.NewTripRepository(db),
		rates: repositories.NewRateRepository(db),
	}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetStatistics returns the caller's travel statistics for the current month
// alongside all-time counters
func (uc *UserController) GetStatistics(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var tripCount int64
	uc.db.Model(&models.Trip{}).Where("user_id = ?", userID).Count(&tripCount)

	var expenseCount int64
	uc.db.Model(&models.Expense{}).
		Joins("JOIN trips ON trips.id = expenses.trip_id").
		Where("trips.user_id = ?", userID).
		Count(&expenseCount)

	now := time.Now()
	trips, err := uc.trips.ListTripsForMonth(userID, now.Year(), now.Month())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	rules, err := uc.rates.ListVehicleRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rules"})
		return
	}

	missionRates, err := uc.rates.ListApprovedMissionRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mission rates"})
		return
	}

	summary := calculator.AggregateMonth(trips, rules, missionRates, now.Year(), now.Month())

	statistics := gin.H{
		"trips_count":            tripCount,
		"expenses_count":         expenseCount,
		"current_month_total":    summary.Total,
		"current_month_distance": summary.DistanceTotal,
		"current_month_trips":    summary.TripCount,
	}

	c.JSON(http.StatusOK, statistics)
}
