// File: /repositories/rate_repository.go
package repositories

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"notedefrais-api/models"
)

// RateRepository is the rate registry: it looks up approved kilometric and
// mission rates and resolves which kilometric tariff applies to a user.
// Precedence lives here, never in the calculator.
type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetVehicleRule retrieves one rule by id. Returns nil without an error when
// the rule no longer exists, so callers can degrade the group to zero cost.
func (r *RateRepository) GetVehicleRule(ruleID uint) (*models.VehicleRateRule, error) {
	var rule models.VehicleRateRule
	err := r.db.First(&rule, "id = ?", ruleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ListVehicleRules returns all of a user's vehicle rate rules
func (r *RateRepository) ListVehicleRules(userID string) ([]models.VehicleRateRule, error) {
	var rules []models.VehicleRateRule
	err := r.db.Where("user_id = ?", userID).Order("priority DESC, id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ListMissionRates returns all of a user's daily mission rates, any statut
func (r *RateRepository) ListMissionRates(userID string) ([]models.DailyMissionRate, error) {
	var rates []models.DailyMissionRate
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// ListApprovedMissionRates returns the user's mission rates that participate
// in totals
func (r *RateRepository) ListApprovedMissionRates(userID string) ([]models.DailyMissionRate, error) {
	var rates []models.DailyMissionRate
	err := r.db.Where("user_id = ? AND statut = ?", userID, models.StatutApproved).
		Order("id ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// ListUserKilometricRates returns a user's kilometric rates, any statut
func (r *RateRepository) ListUserKilometricRates(userID string) ([]models.UserKilometricRate, error) {
	var rates []models.UserKilometricRate
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// ListRoleKilometricRates returns every role-level kilometric rate, any statut
func (r *RateRepository) ListRoleKilometricRates() ([]models.RoleKilometricRate, error) {
	var rates []models.RoleKilometricRate
	err := r.db.Order("role ASC, id ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// ResolveKilometricRate resolves the effective flat per-km tariff for a user.
// An approved user-specific rate takes precedence over the approved rate of the
// user's role. The second return value is false when neither exists.
func (r *RateRepository) ResolveKilometricRate(user *models.User) (decimal.Decimal, bool, error) {
	var userRate models.UserKilometricRate
	err := r.db.Where("user_id = ? AND statut = ?", user.ID, models.StatutApproved).
		Order("id ASC").First(&userRate).Error
	if err == nil {
		return userRate.RatePerKm, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, err
	}

	var roleRate models.RoleKilometricRate
	err = r.db.Where("role = ? AND statut = ?", user.Role, models.StatutApproved).
		Order("id ASC").First(&roleRate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}

	return roleRate.RatePerKm, true, nil
}

// ListPendingRates collects every rate still waiting for a manager decision,
// used by the reminder job
func (r *RateRepository) ListPendingRates() (mission []models.DailyMissionRate, user []models.UserKilometricRate, role []models.RoleKilometricRate, err error) {
	if err = r.db.Where("statut = ?", models.StatutPending).Find(&mission).Error; err != nil {
		return
	}
	if err = r.db.Where("statut = ?", models.StatutPending).Find(&user).Error; err != nil {
		return
	}
	err = r.db.Where("statut = ?", models.StatutPending).Find(&role).Error
	return
}
