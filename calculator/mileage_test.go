// File: /calculator/mileage_test.go
package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedefrais-api/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func ptrInt(v int) *int { return &v }

func ptrUint(v uint) *uint { return &v }

func ptrDec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func tripWithDistance(id string, distance string, ruleID *uint) models.Trip {
	return models.Trip{
		ID:                id,
		DistanceKm:        dec(distance),
		VehicleRateRuleID: ruleID,
	}
}

func TestMileageCost(t *testing.T) {
	t.Run("ALL rule prices every kilometre flat", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  1,
			ConditionType:       models.ConditionAll,
			RateBeforeThreshold: dec("0.5"),
			Active:              true,
		}

		cost := MileageCost(dec("120"), rule)
		assert.True(t, cost.Equal(dec("60")), "got %s", cost)
	})

	t.Run("THRESHOLD rule below threshold matches flat pricing", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  2,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			RateAfterThreshold:  ptrDec("3"),
			ThresholdKm:         ptrInt(100),
			Active:              true,
		}

		cost := MileageCost(dec("80"), rule)
		assert.True(t, cost.Equal(dec("160")), "got %s", cost)
	})

	t.Run("THRESHOLD rule tiers past the threshold", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  2,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			RateAfterThreshold:  ptrDec("3"),
			ThresholdKm:         ptrInt(100),
			Active:              true,
		}

		// 100 * 2 + 50 * 3
		cost := MileageCost(dec("150"), rule)
		assert.True(t, cost.Equal(dec("350")), "got %s", cost)
	})

	t.Run("zero threshold equals ALL at the after rate", func(t *testing.T) {
		threshold := &models.VehicleRateRule{
			ID:                  3,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			RateAfterThreshold:  ptrDec("3"),
			ThresholdKm:         ptrInt(0),
			Active:              true,
		}
		all := &models.VehicleRateRule{
			ID:                  4,
			ConditionType:       models.ConditionAll,
			RateBeforeThreshold: dec("3"),
			Active:              true,
		}

		for _, distance := range []string{"0.5", "1", "42.7", "1000"} {
			got := MileageCost(dec(distance), threshold)
			want := MileageCost(dec(distance), all)
			assert.True(t, got.Equal(want), "distance %s: %s != %s", distance, got, want)
		}
	})

	t.Run("missing after rate falls back to before rate", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  5,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			ThresholdKm:         ptrInt(100),
			Active:              true,
		}

		cost := MileageCost(dec("150"), rule)
		assert.True(t, cost.Equal(dec("300")), "got %s", cost)
	})

	t.Run("missing threshold defaults to zero", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  6,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			RateAfterThreshold:  ptrDec("3"),
			Active:              true,
		}

		cost := MileageCost(dec("10"), rule)
		assert.True(t, cost.Equal(dec("30")), "got %s", cost)
	})

	t.Run("monotonic in distance", func(t *testing.T) {
		rule := &models.VehicleRateRule{
			ID:                  7,
			ConditionType:       models.ConditionThreshold,
			RateBeforeThreshold: dec("2"),
			RateAfterThreshold:  ptrDec("3"),
			ThresholdKm:         ptrInt(100),
			Active:              true,
		}

		previous := decimal.Zero
		for _, distance := range []string{"10", "50", "99", "100", "101", "150", "500"} {
			cost := MileageCost(dec(distance), rule)
			assert.True(t, cost.GreaterThanOrEqual(previous), "cost dropped at %s km", distance)
			previous = cost
		}
	})

	t.Run("nil or inactive rule costs nothing", func(t *testing.T) {
		inactive := &models.VehicleRateRule{
			ID:                  8,
			ConditionType:       models.ConditionAll,
			RateBeforeThreshold: dec("2"),
			Active:              false,
		}

		assert.True(t, MileageCost(dec("100"), nil).IsZero())
		assert.True(t, MileageCost(dec("100"), inactive).IsZero())
	})
}

func TestResolveMileage(t *testing.T) {
	rule := &models.VehicleRateRule{
		ID:                  1,
		ConditionType:       models.ConditionThreshold,
		RateBeforeThreshold: dec("2"),
		RateAfterThreshold:  ptrDec("3"),
		ThresholdKm:         ptrInt(100),
		Active:              true,
	}

	t.Run("rule applies once to the summed distance", func(t *testing.T) {
		trips := []models.Trip{
			tripWithDistance("t1", "60", ptrUint(1)),
			tripWithDistance("t2", "90", ptrUint(1)),
		}

		// 150 km total crosses the tier once: 100*2 + 50*3
		result := ResolveMileage(trips, rule)
		assert.True(t, result.TotalDistance.Equal(dec("150")), "got %s", result.TotalDistance)
		assert.True(t, result.TotalCost.Equal(dec("350")), "got %s", result.TotalCost)
	})

	t.Run("negative distances contribute zero", func(t *testing.T) {
		trips := []models.Trip{
			tripWithDistance("t1", "-20", ptrUint(1)),
			tripWithDistance("t2", "80", ptrUint(1)),
		}

		result := ResolveMileage(trips, rule)
		assert.True(t, result.TotalDistance.Equal(dec("80")), "got %s", result.TotalDistance)
		assert.True(t, result.TotalCost.Equal(dec("160")), "got %s", result.TotalCost)
	})

	t.Run("missing rule reports distance but no cost", func(t *testing.T) {
		trips := []models.Trip{tripWithDistance("t1", "100", ptrUint(99))}

		result := ResolveMileage(trips, nil)
		assert.True(t, result.TotalDistance.Equal(dec("100")))
		assert.True(t, result.TotalCost.IsZero())
	})
}

func TestGroupByRule(t *testing.T) {
	trips := []models.Trip{
		tripWithDistance("t1", "10", ptrUint(2)),
		tripWithDistance("t2", "20", nil),
		tripWithDistance("t3", "30", ptrUint(1)),
		tripWithDistance("t4", "40", ptrUint(2)),
	}

	groups := GroupByRule(trips)
	require.Len(t, groups, 2)

	// First-seen order, trips without a rule dropped
	assert.Equal(t, uint(2), groups[0].RuleID)
	assert.Len(t, groups[0].Trips, 2)
	assert.Equal(t, uint(1), groups[1].RuleID)
	assert.Len(t, groups[1].Trips, 1)
}

func TestSelectRule(t *testing.T) {
	rules := []models.VehicleRateRule{
		{ID: 1, Priority: 1, Active: true, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("1")},
		{ID: 2, Priority: 5, Active: true, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("2")},
		{ID: 3, Priority: 5, Active: true, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("3")},
		{ID: 4, Priority: 9, Active: false, ConditionType: models.ConditionAll, RateBeforeThreshold: dec("4")},
		{ID: 5, Priority: 9, Active: true, TravelTypeID: ptrUint(7), ConditionType: models.ConditionAll, RateBeforeThreshold: dec("5")},
	}

	t.Run("highest priority wins", func(t *testing.T) {
		selected := SelectRule(rules, 1)
		require.NotNil(t, selected)
		assert.Equal(t, uint(2), selected.ID)
	})

	t.Run("lowest id breaks priority ties", func(t *testing.T) {
		selected := SelectRule(rules[1:3], 1)
		require.NotNil(t, selected)
		assert.Equal(t, uint(2), selected.ID)
	})

	t.Run("inactive rules are never selected", func(t *testing.T) {
		selected := SelectRule(rules, 1)
		require.NotNil(t, selected)
		assert.NotEqual(t, uint(4), selected.ID)
	})

	t.Run("travel type scope is honored", func(t *testing.T) {
		selected := SelectRule(rules, 7)
		require.NotNil(t, selected)
		assert.Equal(t, uint(5), selected.ID)
	})

	t.Run("no candidates yields nil", func(t *testing.T) {
		assert.Nil(t, SelectRule(nil, 1))
		assert.Nil(t, SelectRule([]models.VehicleRateRule{{ID: 1, Active: false}}, 1))
	})
}
