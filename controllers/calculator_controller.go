// File: /controllers/calculator_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
	"notedefrais-api/repositories"
	"notedefrais-api/utils"
)

type CalculatorController struct {
	db    *gorm.DB
	rates *repositories.RateRepository
}

func NewCalculatorController(db *gorm.DB) *CalculatorController {
	return &CalculatorController{
		db:    db,
		rates: repositories.NewRateRepository(db),
	}
}

type PreviewTripRequest struct {
	TravelTypeID      uint             `json:"typeDeDeplacementId" binding:"required"`
	DistanceKm        decimal.Decimal  `json:"distanceKm"`
	VehicleRateRuleID *uint            `json:"vehiculeRateRuleId"`
	ExpenseAmounts    []decimal.Decimal `json:"montants"`
}

// PreviewTrip computes a reimbursement breakdown for a trip that has not been
// saved, using the caller's current approved rates
func (cc *CalculatorController) PreviewTrip(c *gin.Context) {
	userID := c.GetString("user_id")

	var req PreviewTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidDistance(req.DistanceKm) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Distance must be between 0 and 10000 km"})
		return
	}

	trip := models.Trip{
		UserID:            userID,
		TravelTypeID:      req.TravelTypeID,
		DistanceKm:        req.DistanceKm,
		VehicleRateRuleID: req.VehicleRateRuleID,
	}
	for i, amount := range req.ExpenseAmounts {
		trip.Expenses = append(trip.Expenses, models.Expense{
			ID:     uint(i + 1),
			Amount: amount,
		})
	}

	missionRates, err := cc.rates.ListApprovedMissionRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mission rates"})
		return
	}

	var rule *models.VehicleRateRule
	if req.VehicleRateRuleID != nil {
		rule, err = cc.rates.GetVehicleRule(*req.VehicleRateRuleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rule"})
			return
		}
	}

	breakdown := calculator.TripTotal(&trip, missionRates, rule)

	c.JSON(http.StatusOK, breakdown)
}

// SuggestRule returns the rule the registry would pick for a travel type,
// following priority then lowest id
func (cc *CalculatorController) SuggestRule(c *gin.Context) {
	userID := c.GetString("user_id")

	travelTypeID, err := strconv.ParseUint(c.Query("typeDeDeplacementId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "typeDeDeplacementId query parameter required"})
		return
	}

	rules, err := cc.rates.ListVehicleRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rules"})
		return
	}

	selected := calculator.SelectRule(rules, uint(travelTypeID))
	if selected == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No applicable vehicle rate rule"})
		return
	}

	c.JSON(http.StatusOK, selected)
}
