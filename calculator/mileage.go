// File: /calculator/mileage.go
package calculator

import (
	"github.com/shopspring/decimal"

	"notedefrais-api/models"
)

// MileageResult is the aggregate mileage outcome for one rule group
type MileageResult struct {
	TotalDistance decimal.Decimal `json:"totalDistance"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

// RuleGroup holds the trips sharing one vehicle rate rule, in first-seen order
type RuleGroup struct {
	RuleID uint
	Trips  []models.Trip
}

// MileageCost applies a rule's tariff to an aggregate distance.
//
// ALL rules price the whole distance at the pre-threshold rate. THRESHOLD rules
// price the first ThresholdKm at the pre-threshold rate and the remainder at the
// post-threshold rate, which keeps the cost monotonic in distance and identical
// to an ALL rule whenever the threshold is never reached.
func MileageCost(distance decimal.Decimal, rule *models.VehicleRateRule) decimal.Decimal {
	if rule == nil || !rule.Active {
		return decimal.Zero
	}
	if distance.IsNegative() {
		distance = decimal.Zero
	}

	if rule.ConditionType != models.ConditionThreshold {
		return distance.Mul(rule.RateBeforeThreshold)
	}

	threshold := rule.EffectiveThreshold()
	if distance.LessThanOrEqual(threshold) {
		return distance.Mul(rule.RateBeforeThreshold)
	}

	beforePart := threshold.Mul(rule.RateBeforeThreshold)
	afterPart := distance.Sub(threshold).Mul(rule.EffectiveAfterRate())
	return beforePart.Add(afterPart)
}

// ResolveMileage computes the aggregate mileage cost for a group of trips that
// share the same vehicle rate rule. The rule is applied once to the summed
// distance, not per trip, so threshold tiers are only crossed once.
//
// A nil or inactive rule means the group is skipped: distance is still reported
// but the cost is zero.
func ResolveMileage(trips []models.Trip, rule *models.VehicleRateRule) MileageResult {
	totalDistance := decimal.Zero
	for i := range trips {
		totalDistance = totalDistance.Add(trips[i].Distance())
	}

	return MileageResult{
		TotalDistance: totalDistance,
		TotalCost:     MileageCost(totalDistance, rule),
	}
}

// GroupByRule groups trips by their vehicle rate rule id, preserving the order
// in which rules are first seen. Trips without a rule are left out entirely:
// they never carry a mileage cost.
func GroupByRule(trips []models.Trip) []RuleGroup {
	var groups []RuleGroup
	index := make(map[uint]int)

	for i := range trips {
		if trips[i].VehicleRateRuleID == nil {
			continue
		}
		ruleID := *trips[i].VehicleRateRuleID

		pos, seen := index[ruleID]
		if !seen {
			pos = len(groups)
			index[ruleID] = pos
			groups = append(groups, RuleGroup{RuleID: ruleID})
		}
		groups[pos].Trips = append(groups[pos].Trips, trips[i])
	}

	return groups
}

// SelectRule picks the applicable vehicle rate rule for a travel type from a
// user's candidate rules. Inactive rules are never considered. Higher priority
// wins; the lowest rule id breaks ties between equal priorities.
func SelectRule(rules []models.VehicleRateRule, travelTypeID uint) *models.VehicleRateRule {
	var selected *models.VehicleRateRule

	for i := range rules {
		rule := &rules[i]
		if !rule.Active {
			continue
		}
		// A rule scoped to a travel type only applies to that type
		if rule.TravelTypeID != nil && *rule.TravelTypeID != travelTypeID {
			continue
		}

		if selected == nil ||
			rule.Priority > selected.Priority ||
			(rule.Priority == selected.Priority && rule.ID < selected.ID) {
			selected = rule
		}
	}

	return selected
}
