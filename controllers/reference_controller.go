// File: /controllers/reference_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"notedefrais-api/models"
)

// ReferenceController serves the reference data the dashboard pickers need:
// travel types and expense types
type ReferenceController struct {
	db *gorm.DB
}

func NewReferenceController(db *gorm.DB) *ReferenceController {
	return &ReferenceController{db: db}
}

type LabelRequest struct {
	Label string `json:"label" binding:"required"`
}

func (rc *ReferenceController) GetTravelTypes(c *gin.Context) {
	var travelTypes []models.TravelType
	if err := rc.db.Order("id ASC").Find(&travelTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch travel types"})
		return
	}

	c.JSON(http.StatusOK, travelTypes)
}

func (rc *ReferenceController) CreateTravelType(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelType := models.TravelType{Label: req.Label}
	if err := rc.db.Create(&travelType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create travel type"})
		return
	}

	c.JSON(http.StatusCreated, travelType)
}

func (rc *ReferenceController) UpdateTravelType(c *gin.Context) {
	var travelType models.TravelType
	if err := rc.db.First(&travelType, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Travel type not found"})
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rc.db.Model(&travelType).Update("label", req.Label).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update travel type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Travel type updated successfully"})
}

func (rc *ReferenceController) DeleteTravelType(c *gin.Context) {
	var travelType models.TravelType
	if err := rc.db.First(&travelType, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Travel type not found"})
		return
	}

	// Trips referencing the type keep their id; rate lookups simply stop matching
	if err := rc.db.Delete(&travelType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete travel type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Travel type deleted successfully"})
}

func (rc *ReferenceController) GetExpenseTypes(c *gin.Context) {
	var expenseTypes []models.ExpenseType
	if err := rc.db.Order("id ASC").Find(&expenseTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expense types"})
		return
	}

	c.JSON(http.StatusOK, expenseTypes)
}

func (rc *ReferenceController) CreateExpenseType(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expenseType := models.ExpenseType{Label: req.Label}
	if err := rc.db.Create(&expenseType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense type"})
		return
	}

	c.JSON(http.StatusCreated, expenseType)
}

func (rc *ReferenceController) UpdateExpenseType(c *gin.Context) {
	var expenseType models.ExpenseType
	if err := rc.db.First(&expenseType, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense type not found"})
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rc.db.Model(&expenseType).Update("label", req.Label).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense type updated successfully"})
}

func (rc *ReferenceController) DeleteExpenseType(c *gin.Context) {
	var expenseType models.ExpenseType
	if err := rc.db.First(&expenseType, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense type not found"})
		return
	}

	if err := rc.db.Delete(&expenseType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense type deleted successfully"})
}
