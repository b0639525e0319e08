// File: /models/trip.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a single day's travel record (déplacement) for a user.
// At most one trip may exist per user per calendar day.
type Trip struct {
	ID                string          `json:"id" gorm:"primaryKey;size:191"`
	UserID            string          `json:"userId" gorm:"not null;size:191;uniqueIndex:uk_trips_user_date"`
	Date              DateOnly        `json:"date" gorm:"not null;uniqueIndex:uk_trips_user_date"`
	TravelTypeID      uint            `json:"typeDeDeplacementId" gorm:"not null"`
	Destination       string          `json:"destination" gorm:"size:255"`
	WorksiteID        *string         `json:"chantierId" gorm:"size:191"`
	DistanceKm        decimal.Decimal `json:"distanceKm" gorm:"type:decimal(10,2);default:0"`
	VehicleRateRuleID *uint           `json:"vehiculeRateRuleId"`
	CreatedByID       string          `json:"createdById" gorm:"size:191"`
	UpdatedByID       string          `json:"updatedById" gorm:"size:191"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Worksite *Worksite `json:"chantier,omitempty" gorm:"foreignKey:WorksiteID"`
	Expenses []Expense `json:"depenses" gorm:"foreignKey:TripID"`
}

// Distance returns the trip distance, clamped to zero.
// Negative or unset distances never contribute mileage.
func (t *Trip) Distance() decimal.Decimal {
	if t.DistanceKm.IsNegative() {
		return decimal.Zero
	}
	return t.DistanceKm
}

// Expense is a reimbursable cost item (dépense) attached to exactly one trip
type Expense struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	TripID        string          `json:"deplacementId" gorm:"not null;size:191;index"`
	ExpenseTypeID uint            `json:"typeDepenseId" gorm:"not null"`
	Amount        decimal.Decimal `json:"montant" gorm:"type:decimal(12,2);default:0"`
	ReceiptPath   *string         `json:"cheminJustificatif" gorm:"size:500"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Trip Trip `json:"-" gorm:"foreignKey:TripID"`
}

// Justified reports whether a receipt file backs this expense
func (e *Expense) Justified() bool {
	return e.ReceiptPath != nil && *e.ReceiptPath != ""
}

// SafeAmount returns the expense amount, clamped to zero
func (e *Expense) SafeAmount() decimal.Decimal {
	if e.Amount.IsNegative() {
		return decimal.Zero
	}
	return e.Amount
}
