// File: /models/rates.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle rate rule condition types
const (
	ConditionAll       = "ALL"
	ConditionThreshold = "THRESHOLD"
)

// Rate approval states (statut)
const (
	StatutPending  = "en_attente"
	StatutApproved = "approuvé"
	StatutRejected = "rejeté"
)

// VehicleRateRule is a per-user tiered kilometric rate schedule.
// ALL rules price every kilometre at RateBeforeThreshold; THRESHOLD rules switch
// to RateAfterThreshold once the grouped distance passes ThresholdKm.
type VehicleRateRule struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	UserID              string           `json:"userId" gorm:"not null;size:191;index"`
	TravelTypeID        *uint            `json:"typeDeDeplacementId"`
	Label               string           `json:"label" gorm:"size:255"`
	ConditionType       string           `json:"conditionType" gorm:"not null;default:'ALL';size:20"`
	RateBeforeThreshold decimal.Decimal  `json:"rateBeforeThreshold" gorm:"type:decimal(10,4);not null"`
	RateAfterThreshold  *decimal.Decimal `json:"rateAfterThreshold" gorm:"type:decimal(10,4)"`
	ThresholdKm         *int             `json:"thresholdKm"`
	Priority            int              `json:"priority" gorm:"default:0"`
	Active              bool             `json:"active" gorm:"default:true"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// EffectiveThreshold returns the threshold distance, defaulting to 0 when absent
func (r *VehicleRateRule) EffectiveThreshold() decimal.Decimal {
	if r.ThresholdKm == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(*r.ThresholdKm))
}

// EffectiveAfterRate returns the post-threshold rate, falling back to the
// pre-threshold rate when absent
func (r *VehicleRateRule) EffectiveAfterRate() decimal.Decimal {
	if r.RateAfterThreshold == nil {
		return r.RateBeforeThreshold
	}
	return *r.RateAfterThreshold
}

// DailyMissionRate is a flat per-day allowance (tarif journalier) for a user
// and travel type. Only approved rates ever contribute to totals.
type DailyMissionRate struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	UserID       string          `json:"userId" gorm:"not null;size:191;index"`
	TravelTypeID uint            `json:"typeDeDeplacementId" gorm:"not null"`
	TarifParJour decimal.Decimal `json:"tarifParJour" gorm:"type:decimal(10,2);not null"`
	Statut       string          `json:"statut" gorm:"not null;default:'en_attente';size:20"`
	ApproverID   *string         `json:"approverId" gorm:"size:191"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Approved reports whether the rate participates in totals
func (r *DailyMissionRate) Approved() bool {
	return r.Statut == StatutApproved
}

// UserKilometricRate is a flat per-km tariff specific to one user.
// When approved it takes precedence over the user's role-based rate.
type UserKilometricRate struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     string          `json:"userId" gorm:"not null;size:191;index"`
	RatePerKm  decimal.Decimal `json:"ratePerKm" gorm:"type:decimal(10,4);not null"`
	Statut     string          `json:"statut" gorm:"not null;default:'en_attente';size:20"`
	ApproverID *string         `json:"approverId" gorm:"size:191"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (r *UserKilometricRate) Approved() bool {
	return r.Statut == StatutApproved
}

// RoleKilometricRate is a flat per-km tariff keyed by user role
type RoleKilometricRate struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Role       string          `json:"role" gorm:"not null;size:50;index"`
	RatePerKm  decimal.Decimal `json:"ratePerKm" gorm:"type:decimal(10,4);not null"`
	Statut     string          `json:"statut" gorm:"not null;default:'en_attente';size:20"`
	ApproverID *string         `json:"approverId" gorm:"size:191"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (r *RoleKilometricRate) Approved() bool {
	return r.Statut == StatutApproved
}
