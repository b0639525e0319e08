// File: /repositories/trip_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"notedefrais-api/models"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// GetTrip retrieves a trip with its expenses
func (r *TripRepository) GetTrip(tripID, userID string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Preload("Expenses").Preload("Worksite").
		First(&trip, "id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindByUserAndDate returns the user's trip on a given calendar day, if any.
// The store guarantees at most one trip per user per day.
func (r *TripRepository) FindByUserAndDate(userID string, date models.DateOnly) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

// ListTripsForMonth returns the user's trips whose date falls within the given
// calendar month, first and last day inclusive, with expenses preloaded
func (r *TripRepository) ListTripsForMonth(userID string, year int, month time.Month) ([]models.Trip, error) {
	first := models.NewDateOnly(year, month, 1)
	last := models.DateOnly{Time: first.AddDate(0, 1, -1)}

	var trips []models.Trip
	err := r.db.Preload("Expenses").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, first, last).
		Order("date ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

// ListTrips returns all of the user's trips with expenses preloaded
func (r *TripRepository) ListTrips(userID string) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Preload("Expenses").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}
