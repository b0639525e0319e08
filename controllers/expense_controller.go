// File: /controllers/expense_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"notedefrais-api/models"
	"notedefrais-api/utils"
)

type ExpenseController struct {
	db        *gorm.DB
	uploadDir string
}

func NewExpenseController(db *gorm.DB, uploadDir string) *ExpenseController {
	return &ExpenseController{db: db, uploadDir: uploadDir}
}

type ExpenseRequest struct {
	ExpenseTypeID uint            `json:"typeDepenseId" binding:"required"`
	Amount        decimal.Decimal `json:"montant"`
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	// The expense must belong to one of the caller's trips
	var trip models.Trip
	if err := ec.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidAmount(req.Amount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot be negative"})
		return
	}

	expense := models.Expense{
		TripID:        trip.ID,
		ExpenseTypeID: req.ExpenseTypeID,
		Amount:        req.Amount,
	}

	if err := ec.db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	expense, ok := ec.findOwnedExpense(c, expenseID, userID)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidAmount(req.Amount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot be negative"})
		return
	}

	updates := map[string]interface{}{
		"expense_type_id": req.ExpenseTypeID,
		"amount":          req.Amount,
	}

	if err := ec.db.Model(expense).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	expense, ok := ec.findOwnedExpense(c, expenseID, userID)
	if !ok {
		return
	}

	if err := ec.db.Delete(expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// UploadReceipt stores a receipt file (justificatif) and links it to the
// expense, which flips it to justified in every recap
func (ec *ExpenseController) UploadReceipt(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	expense, ok := ec.findOwnedExpense(c, expenseID, userID)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt file required"})
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	switch extension {
	case ".pdf", ".png", ".jpg", ".jpeg":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported receipt format"})
		return
	}

	if err := os.MkdirAll(ec.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	storedName := fmt.Sprintf("%s%s", uuid.New().String(), extension)
	storedPath := filepath.Join(ec.uploadDir, storedName)

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store receipt"})
		return
	}

	if err := ec.db.Model(expense).Update("receipt_path", storedPath).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Receipt uploaded successfully",
		"cheminJustificatif": storedPath,
	})
}

// findOwnedExpense loads an expense and checks the owning trip belongs to the
// caller. Writes the error response itself when the lookup fails.
func (ec *ExpenseController) findOwnedExpense(c *gin.Context, expenseID, userID string) (*models.Expense, bool) {
	var expense models.Expense
	if err := ec.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return nil, false
	}

	var trip models.Trip
	if err := ec.db.First(&trip, "id = ? AND user_id = ?", expense.TripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found or access denied"})
		return nil, false
	}

	return &expense, true
}
