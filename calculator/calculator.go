// File: /calculator/calculator.go

// Package calculator computes reimbursement totals from trip and rate
// snapshots. Every function here is pure: inputs are fully materialized by the
// store and registry, nothing is re-resolved, and missing or malformed optional
// data degrades to a zero contribution instead of an error.
package calculator

import (
	"github.com/shopspring/decimal"

	"notedefrais-api/models"
)

// TripBreakdown decomposes a single trip's total into its three contributions
type TripBreakdown struct {
	ExpenseTotal  decimal.Decimal `json:"expenseTotal"`
	MissionAmount decimal.Decimal `json:"missionAmount"`
	MileageCost   decimal.Decimal `json:"mileageCost"`
	Total         decimal.Decimal `json:"total"`
	Distance      decimal.Decimal `json:"distance"`
}

// MissionRateAmount returns the flat daily allowance for a trip: the approved
// mission rate matching the trip's travel type, or zero when none exists.
// If several approved rates match the same travel type the lowest rate id wins,
// so repeated calls always pick the same one.
func MissionRateAmount(trip *models.Trip, missionRates []models.DailyMissionRate) decimal.Decimal {
	var match *models.DailyMissionRate

	for i := range missionRates {
		rate := &missionRates[i]
		if !rate.Approved() || rate.TravelTypeID != trip.TravelTypeID {
			continue
		}
		if match == nil || rate.ID < match.ID {
			match = rate
		}
	}

	if match == nil {
		return decimal.Zero
	}
	return match.TarifParJour
}

// ExpenseTotal sums a trip's expense amounts. Negative amounts count as zero.
func ExpenseTotal(trip *models.Trip) decimal.Decimal {
	total := decimal.Zero
	for i := range trip.Expenses {
		total = total.Add(trip.Expenses[i].SafeAmount())
	}
	return total
}

// TripTotal computes a single trip's total: expenses plus at most one mission
// rate contribution plus at most one mileage contribution. The vehicle rule is
// evaluated at trip granularity here; monthly exports evaluate rules across the
// whole month's group instead, which is the authoritative aggregate for
// THRESHOLD rules spanning several trips.
func TripTotal(trip *models.Trip, missionRates []models.DailyMissionRate, rule *models.VehicleRateRule) TripBreakdown {
	breakdown := TripBreakdown{
		ExpenseTotal:  ExpenseTotal(trip),
		MissionAmount: MissionRateAmount(trip, missionRates),
		Distance:      trip.Distance(),
	}

	if trip.VehicleRateRuleID != nil {
		breakdown.MileageCost = MileageCost(trip.Distance(), rule)
	} else {
		breakdown.MileageCost = decimal.Zero
	}

	breakdown.Total = breakdown.ExpenseTotal.
		Add(breakdown.MissionAmount).
		Add(breakdown.MileageCost)

	return breakdown
}
