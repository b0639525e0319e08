// File: /calculator/calculator_test.go
package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notedefrais-api/models"
)

func strPtr(s string) *string { return &s }

func TestMissionRateAmount(t *testing.T) {
	trip := &models.Trip{ID: "t1", TravelTypeID: 2}

	t.Run("approved matching rate applies", func(t *testing.T) {
		rates := []models.DailyMissionRate{
			{ID: 1, TravelTypeID: 2, TarifParJour: dec("15.50"), Statut: models.StatutApproved},
		}

		amount := MissionRateAmount(trip, rates)
		assert.True(t, amount.Equal(dec("15.50")), "got %s", amount)
	})

	t.Run("pending and rejected rates are excluded", func(t *testing.T) {
		rates := []models.DailyMissionRate{
			{ID: 1, TravelTypeID: 2, TarifParJour: dec("15.50"), Statut: models.StatutPending},
			{ID: 2, TravelTypeID: 2, TarifParJour: dec("20"), Statut: models.StatutRejected},
		}

		assert.True(t, MissionRateAmount(trip, rates).IsZero())
	})

	t.Run("other travel types do not match", func(t *testing.T) {
		rates := []models.DailyMissionRate{
			{ID: 1, TravelTypeID: 3, TarifParJour: dec("15.50"), Statut: models.StatutApproved},
		}

		assert.True(t, MissionRateAmount(trip, rates).IsZero())
	})

	t.Run("duplicate approved rates pick the lowest id", func(t *testing.T) {
		rates := []models.DailyMissionRate{
			{ID: 9, TravelTypeID: 2, TarifParJour: dec("30"), Statut: models.StatutApproved},
			{ID: 4, TravelTypeID: 2, TarifParJour: dec("12"), Statut: models.StatutApproved},
		}

		amount := MissionRateAmount(trip, rates)
		assert.True(t, amount.Equal(dec("12")), "got %s", amount)
	})
}

func TestTripTotal(t *testing.T) {
	t.Run("sums expenses, mission rate and mileage exactly once", func(t *testing.T) {
		trip := &models.Trip{
			ID:                "t1",
			TravelTypeID:      1,
			DistanceKm:        dec("40"),
			VehicleRateRuleID: ptrUint(1),
			Expenses: []models.Expense{
				{ID: 1, Amount: dec("12.30"), ReceiptPath: strPtr("uploads/r1.pdf")},
				{ID: 2, Amount: dec("7.70")},
			},
		}
		rates := []models.DailyMissionRate{
			{ID: 1, TravelTypeID: 1, TarifParJour: dec("10"), Statut: models.StatutApproved},
		}
		rule := &models.VehicleRateRule{
			ID:                  1,
			ConditionType:       models.ConditionAll,
			RateBeforeThreshold: dec("0.5"),
			Active:              true,
		}

		breakdown := TripTotal(trip, rates, rule)
		assert.True(t, breakdown.ExpenseTotal.Equal(dec("20")), "got %s", breakdown.ExpenseTotal)
		assert.True(t, breakdown.MissionAmount.Equal(dec("10")), "got %s", breakdown.MissionAmount)
		assert.True(t, breakdown.MileageCost.Equal(dec("20")), "got %s", breakdown.MileageCost)
		assert.True(t, breakdown.Total.Equal(dec("50")), "got %s", breakdown.Total)
	})

	t.Run("no rule reference means no mileage", func(t *testing.T) {
		trip := &models.Trip{ID: "t1", TravelTypeID: 1, DistanceKm: dec("40")}

		breakdown := TripTotal(trip, nil, nil)
		assert.True(t, breakdown.MileageCost.IsZero())
		assert.True(t, breakdown.Total.IsZero())
	})

	t.Run("empty trip contributes exactly zero", func(t *testing.T) {
		trip := &models.Trip{ID: "t1", TravelTypeID: 1}

		breakdown := TripTotal(trip, nil, nil)
		assert.True(t, breakdown.Total.IsZero())
		assert.True(t, breakdown.Distance.IsZero())
	})

	t.Run("resolved rate is used as handed over", func(t *testing.T) {
		// Rate precedence lives in the registry; the calculator just applies
		// whichever rate arrives. Swapping inputs must swap outputs.
		trip := &models.Trip{ID: "t1", TravelTypeID: 1, DistanceKm: dec("10"), VehicleRateRuleID: ptrUint(1)}

		userRate := &models.VehicleRateRule{ID: 1, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("0.7"), Active: true}
		roleRate := &models.VehicleRateRule{ID: 1, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("0.4"), Active: true}

		withUser := TripTotal(trip, nil, userRate)
		withRole := TripTotal(trip, nil, roleRate)
		assert.True(t, withUser.MileageCost.Equal(dec("7")), "got %s", withUser.MileageCost)
		assert.True(t, withRole.MileageCost.Equal(dec("4")), "got %s", withRole.MileageCost)
	})
}
