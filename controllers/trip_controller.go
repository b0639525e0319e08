// File: /controllers/trip_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
	"notedefrais-api/repositories"
	"notedefrais-api/utils"
)

type TripController struct {
	db    *gorm.DB
	trips *repositories.TripRepository
	rates *repositories.RateRepository
}

func NewTripController(db *gorm.DB) *TripController {
	return &TripController{
		db:    db,
		trips: repositories.NewTripRepository(db),
		rates: repositories.NewRateRepository(db),
	}
}

type TripRequest struct {
	Date              models.DateOnly `json:"date" binding:"required"`
	TravelTypeID      uint            `json:"typeDeDeplacementId" binding:"required"`
	Destination       string          `json:"destination" binding:"required"`
	WorksiteID        *string         `json:"chantierId"`
	DistanceKm        decimal.Decimal `json:"distanceKm"`
	VehicleRateRuleID *uint           `json:"vehiculeRateRuleId"`
}

func (tc *TripController) GetTrips(c *gin.Context) {
	userID := c.GetString("user_id")

	// Optional calendar month filter
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr != "" && monthStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}

		trips, err := tc.trips.ListTripsForMonth(userID, year, time.Month(month))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
			return
		}
		c.JSON(http.StatusOK, trips)
		return
	}

	trips, err := tc.trips.ListTrips(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (tc *TripController) CreateTrip(c *gin.Context) {
	userID := c.GetString("user_id")

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidDistance(req.DistanceKm) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Distance must be between 0 and 10000 km"})
		return
	}

	// One trip per user per calendar day
	existing, err := tc.trips.FindByUserAndDate(userID, req.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing trips"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A trip already exists for this date"})
		return
	}

	trip := models.Trip{
		ID:                uuid.New().String(),
		UserID:            userID,
		Date:              req.Date,
		TravelTypeID:      req.TravelTypeID,
		Destination:       req.Destination,
		WorksiteID:        req.WorksiteID,
		DistanceKm:        req.DistanceKm,
		VehicleRateRuleID: req.VehicleRateRuleID,
		CreatedByID:       userID,
		UpdatedByID:       userID,
	}

	if err := tc.db.Create(&trip).Error; err != nil {
		// The unique (user, date) index catches races the lookup above missed
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A trip already exists for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (tc *TripController) GetTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	trip, err := tc.trips.GetTrip(tripID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) UpdateTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidDistance(req.DistanceKm) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Distance must be between 0 and 10000 km"})
		return
	}

	// Moving the trip to another day must not collide with an existing one
	if !req.Date.Equal(trip.Date.Time) {
		existing, err := tc.trips.FindByUserAndDate(userID, req.Date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing trips"})
			return
		}
		if existing != nil && existing.ID != trip.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "A trip already exists for this date"})
			return
		}
	}

	updates := map[string]interface{}{
		"date":                 req.Date,
		"travel_type_id":       req.TravelTypeID,
		"destination":          req.Destination,
		"worksite_id":          req.WorksiteID,
		"distance_km":          req.DistanceKm,
		"vehicle_rate_rule_id": req.VehicleRateRuleID,
		"updated_by_id":        userID,
	}

	if err := tc.db.Model(&trip).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A trip already exists for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip updated successfully"})
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	// Expenses belong to exactly one trip, remove them with it
	if err := tc.db.Where("trip_id = ?", trip.ID).Delete(&models.Expense{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip expenses"})
		return
	}

	if err := tc.db.Delete(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// GetTripTotal computes a single trip's reimbursement breakdown. The vehicle
// rule is evaluated at trip granularity here; the monthly recap evaluates it
// across the whole month and is the authoritative figure for exports.
func (tc *TripController) GetTripTotal(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	trip, err := tc.trips.GetTrip(tripID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	missionRates, err := tc.rates.ListApprovedMissionRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mission rates"})
		return
	}

	var rule *models.VehicleRateRule
	if trip.VehicleRateRuleID != nil {
		// A deleted rule silently degrades to zero mileage
		rule, err = tc.rates.GetVehicleRule(*trip.VehicleRateRuleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rule"})
			return
		}
	}

	breakdown := calculator.TripTotal(trip, missionRates, rule)

	c.JSON(http.StatusOK, gin.H{
		"tripId":    trip.ID,
		"date":      trip.Date,
		"breakdown": breakdown,
		"estimate":  true,
	})
}
