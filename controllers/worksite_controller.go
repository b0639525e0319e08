// File: /controllers/worksite_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"notedefrais-api/models"
)

type WorksiteController struct {
	db *gorm.DB
}

func NewWorksiteController(db *gorm.DB) *WorksiteController {
	return &WorksiteController{db: db}
}

type WorksiteRequest struct {
	Label   string `json:"label" binding:"required"`
	Address string `json:"address"`
}

func (wc *WorksiteController) GetWorksites(c *gin.Context) {
	var worksites []models.Worksite
	if err := wc.db.Order("label ASC").Find(&worksites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch worksites"})
		return
	}

	c.JSON(http.StatusOK, worksites)
}

func (wc *WorksiteController) CreateWorksite(c *gin.Context) {
	var req WorksiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	worksite := models.Worksite{
		ID:      uuid.New().String(),
		Label:   req.Label,
		Address: req.Address,
	}

	if err := wc.db.Create(&worksite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksite"})
		return
	}

	c.JSON(http.StatusCreated, worksite)
}

func (wc *WorksiteController) UpdateWorksite(c *gin.Context) {
	worksiteID := c.Param("id")

	var worksite models.Worksite
	if err := wc.db.First(&worksite, "id = ?", worksiteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worksite not found"})
		return
	}

	var req WorksiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"label":   req.Label,
		"address": req.Address,
	}

	if err := wc.db.Model(&worksite).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update worksite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worksite updated successfully"})
}

func (wc *WorksiteController) DeleteWorksite(c *gin.Context) {
	worksiteID := c.Param("id")

	var worksite models.Worksite
	if err := wc.db.First(&worksite, "id = ?", worksiteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worksite not found"})
		return
	}

	if err := wc.db.Delete(&worksite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete worksite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worksite deleted successfully"})
}
