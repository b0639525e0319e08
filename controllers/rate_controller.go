// File: /controllers/rate_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"notedefrais-api/models"
	"notedefrais-api/repositories"
	"notedefrais-api/utils"
)

type RateController struct {
	db    *gorm.DB
	rates *repositories.RateRepository
}

func NewRateController(db *gorm.DB) *RateController {
	return &RateController{
		db:    db,
		rates: repositories.NewRateRepository(db),
	}
}

// --- Vehicle rate rules ---

type VehicleRuleRequest struct {
	TravelTypeID        *uint            `json:"typeDeDeplacementId"`
	Label               string           `json:"label"`
	ConditionType       string           `json:"conditionType" binding:"required,oneof=ALL THRESHOLD"`
	RateBeforeThreshold decimal.Decimal  `json:"rateBeforeThreshold" binding:"required"`
	RateAfterThreshold  *decimal.Decimal `json:"rateAfterThreshold"`
	ThresholdKm         *int             `json:"thresholdKm"`
	Priority            int              `json:"priority"`
	Active              *bool            `json:"active"`
}

func (req *VehicleRuleRequest) validate() string {
	if !utils.IsValidRate(req.RateBeforeThreshold) {
		return "rateBeforeThreshold must be between 0 and 100"
	}
	if req.RateAfterThreshold != nil && !utils.IsValidRate(*req.RateAfterThreshold) {
		return "rateAfterThreshold must be between 0 and 100"
	}
	if req.ConditionType == models.ConditionThreshold {
		if req.ThresholdKm == nil {
			return "thresholdKm is required for THRESHOLD rules"
		}
		if *req.ThresholdKm < 0 {
			return "thresholdKm cannot be negative"
		}
	}
	return ""
}

func (rc *RateController) GetVehicleRules(c *gin.Context) {
	userID := c.GetString("user_id")

	rules, err := rc.rates.ListVehicleRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle rate rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (rc *RateController) CreateVehicleRule(c *gin.Context) {
	userID := c.GetString("user_id")

	var req VehicleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := models.VehicleRateRule{
		UserID:              userID,
		TravelTypeID:        req.TravelTypeID,
		Label:               req.Label,
		ConditionType:       req.ConditionType,
		RateBeforeThreshold: req.RateBeforeThreshold,
		RateAfterThreshold:  req.RateAfterThreshold,
		ThresholdKm:         req.ThresholdKm,
		Priority:            req.Priority,
		Active:              active,
	}

	if err := rc.db.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle rate rule"})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (rc *RateController) UpdateVehicleRule(c *gin.Context) {
	userID := c.GetString("user_id")
	ruleID := c.Param("id")

	var rule models.VehicleRateRule
	if err := rc.db.First(&rule, "id = ? AND user_id = ?", ruleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle rate rule not found or access denied"})
		return
	}

	var req VehicleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	active := rule.Active
	if req.Active != nil {
		active = *req.Active
	}

	updates := map[string]interface{}{
		"travel_type_id":        req.TravelTypeID,
		"label":                 req.Label,
		"condition_type":        req.ConditionType,
		"rate_before_threshold": req.RateBeforeThreshold,
		"rate_after_threshold":  req.RateAfterThreshold,
		"threshold_km":          req.ThresholdKm,
		"priority":              req.Priority,
		"active":                active,
	}

	if err := rc.db.Model(&rule).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle rate rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle rate rule updated successfully"})
}

func (rc *RateController) DeleteVehicleRule(c *gin.Context) {
	userID := c.GetString("user_id")
	ruleID := c.Param("id")

	var rule models.VehicleRateRule
	if err := rc.db.First(&rule, "id = ? AND user_id = ?", ruleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle rate rule not found or access denied"})
		return
	}

	// Trips keep their ruleId; the recap degrades the orphaned group to zero
	if err := rc.db.Delete(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle rate rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle rate rule deleted successfully"})
}

// --- Daily mission rates ---

type MissionRateRequest struct {
	TravelTypeID uint            `json:"typeDeDeplacementId" binding:"required"`
	TarifParJour decimal.Decimal `json:"tarifParJour" binding:"required"`
}

func (rc *RateController) GetMissionRates(c *gin.Context) {
	userID := c.GetString("user_id")

	rates, err := rc.rates.ListMissionRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mission rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

func (rc *RateController) CreateMissionRate(c *gin.Context) {
	userID := c.GetString("user_id")

	var req MissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TarifParJour.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tarifParJour cannot be negative"})
		return
	}

	// New rates always start pending until a manager decides
	rate := models.DailyMissionRate{
		UserID:       userID,
		TravelTypeID: req.TravelTypeID,
		TarifParJour: req.TarifParJour,
		Statut:       models.StatutPending,
	}

	if err := rc.db.Create(&rate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mission rate"})
		return
	}

	c.JSON(http.StatusCreated, rate)
}

// ApproveMissionRate transitions a pending rate to approved (manager only)
func (rc *RateController) ApproveMissionRate(c *gin.Context) {
	rc.decideMissionRate(c, models.StatutApproved)
}

// RejectMissionRate transitions a pending rate to rejected (manager only)
func (rc *RateController) RejectMissionRate(c *gin.Context) {
	rc.decideMissionRate(c, models.StatutRejected)
}

func (rc *RateController) decideMissionRate(c *gin.Context, statut string) {
	approverID := c.GetString("user_id")
	rateID := c.Param("id")

	var rate models.DailyMissionRate
	if err := rc.db.First(&rate, "id = ?", rateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mission rate not found"})
		return
	}

	// A rate is decided exactly once
	if rate.Statut != models.StatutPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Mission rate has already been decided"})
		return
	}

	updates := map[string]interface{}{
		"statut":      statut,
		"approver_id": approverID,
	}

	if err := rc.db.Model(&rate).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mission rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mission rate " + statut})
}

// --- Kilometric rates ---

type UserKilometricRateRequest struct {
	RatePerKm decimal.Decimal `json:"ratePerKm" binding:"required"`
}

type RoleKilometricRateRequest struct {
	Role      string          `json:"role" binding:"required"`
	RatePerKm decimal.Decimal `json:"ratePerKm" binding:"required"`
}

// GetUserKilometricRates lists the caller's kilometric rates, pending included,
// so a manager decision can reference a real id
func (rc *RateController) GetUserKilometricRates(c *gin.Context) {
	userID := c.GetString("user_id")

	rates, err := rc.rates.ListUserKilometricRates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch kilometric rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

// GetRoleKilometricRates lists every role-level rate, pending included (manager only)
func (rc *RateController) GetRoleKilometricRates(c *gin.Context) {
	rates, err := rc.rates.ListRoleKilometricRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch role kilometric rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

func (rc *RateController) CreateUserKilometricRate(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UserKilometricRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidRate(req.RatePerKm) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ratePerKm must be between 0 and 100"})
		return
	}

	rate := models.UserKilometricRate{
		UserID:    userID,
		RatePerKm: req.RatePerKm,
		Statut:    models.StatutPending,
	}

	if err := rc.db.Create(&rate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create kilometric rate"})
		return
	}

	c.JSON(http.StatusCreated, rate)
}

func (rc *RateController) CreateRoleKilometricRate(c *gin.Context) {
	var req RoleKilometricRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidRate(req.RatePerKm) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ratePerKm must be between 0 and 100"})
		return
	}

	rate := models.RoleKilometricRate{
		Role:      req.Role,
		RatePerKm: req.RatePerKm,
		Statut:    models.StatutPending,
	}

	if err := rc.db.Create(&rate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create role kilometric rate"})
		return
	}

	c.JSON(http.StatusCreated, rate)
}

func (rc *RateController) ApproveUserKilometricRate(c *gin.Context) {
	rc.decideKilometricRate(c, &models.UserKilometricRate{}, models.StatutApproved)
}

func (rc *RateController) RejectUserKilometricRate(c *gin.Context) {
	rc.decideKilometricRate(c, &models.UserKilometricRate{}, models.StatutRejected)
}

func (rc *RateController) ApproveRoleKilometricRate(c *gin.Context) {
	rc.decideKilometricRate(c, &models.RoleKilometricRate{}, models.StatutApproved)
}

func (rc *RateController) RejectRoleKilometricRate(c *gin.Context) {
	rc.decideKilometricRate(c, &models.RoleKilometricRate{}, models.StatutRejected)
}

func (rc *RateController) decideKilometricRate(c *gin.Context, model interface{}, statut string) {
	approverID := c.GetString("user_id")
	rateID := c.Param("id")

	tx := rc.db.Model(model).
		Where("id = ? AND statut = ?", rateID, models.StatutPending).
		Updates(map[string]interface{}{
			"statut":      statut,
			"approver_id": approverID,
		})
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update kilometric rate"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Kilometric rate not found or already decided"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kilometric rate " + statut})
}

// GetResolvedKilometricRate returns the flat per-km tariff the registry
// resolves for the caller: user-specific approved rate first, role rate second
func (rc *RateController) GetResolvedKilometricRate(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := rc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	rate, found, err := rc.rates.ResolveKilometricRate(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve kilometric rate"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No approved kilometric rate for this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratePerKm": rate})
}
