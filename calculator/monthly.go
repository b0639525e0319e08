// File: /calculator/monthly.go
package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"notedefrais-api/models"
)

// JustificationStatus classifies how completely a trip's expenses are backed
// by receipts
type JustificationStatus string

const (
	FullyJustified     JustificationStatus = "fullyJustified"
	PartiallyJustified JustificationStatus = "partiallyJustified"
	Unjustified        JustificationStatus = "unjustified"
)

// TripSummary is the per-trip line of a monthly recap
type TripSummary struct {
	TripID            string              `json:"tripId"`
	Date              models.DateOnly     `json:"date"`
	Destination       string              `json:"destination"`
	Distance          decimal.Decimal     `json:"distance"`
	ExpenseTotal      decimal.Decimal     `json:"expenseTotal"`
	ExpenseCount      int                 `json:"expenseCount"`
	MissionAmount     decimal.Decimal     `json:"missionAmount"`
	Justification     JustificationStatus `json:"justification"`
	JustifiedFraction decimal.Decimal     `json:"justifiedFraction"`
}

// RuleGroupTotal is the mileage outcome of one vehicle rate rule over a month
type RuleGroupTotal struct {
	RuleID        uint            `json:"ruleId"`
	TripCount     int             `json:"tripCount"`
	TotalDistance decimal.Decimal `json:"totalDistance"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

// MonthlySummary aggregates a calendar month of trips into a single recap
type MonthlySummary struct {
	Year          int              `json:"year"`
	Month         time.Month       `json:"month"`
	TripCount     int              `json:"tripCount"`
	DistanceTotal decimal.Decimal  `json:"monthlyDistanceTotal"`
	ExpenseCount  int              `json:"monthlyExpenseCount"`
	ExpenseTotal  decimal.Decimal  `json:"expenseTotal"`
	MissionTotal  decimal.Decimal  `json:"missionTotal"`
	MileageTotal  decimal.Decimal  `json:"mileageTotal"`
	Total         decimal.Decimal  `json:"monthlyTotal"`
	RuleGroups    []RuleGroupTotal `json:"ruleGroups"`
	Trips         []TripSummary    `json:"trips"`
}

// ClassifyJustification classifies a group of expenses by receipt coverage and
// returns the justified fraction. A trip with no expenses has nothing left to
// justify and counts as fully justified with fraction 1.
func ClassifyJustification(expenses []models.Expense) (JustificationStatus, decimal.Decimal) {
	if len(expenses) == 0 {
		return FullyJustified, decimal.NewFromInt(1)
	}

	justified := 0
	for i := range expenses {
		if expenses[i].Justified() {
			justified++
		}
	}

	fraction := decimal.NewFromInt(int64(justified)).
		Div(decimal.NewFromInt(int64(len(expenses))))

	switch justified {
	case len(expenses):
		return FullyJustified, fraction
	case 0:
		return Unjustified, fraction
	default:
		return PartiallyJustified, fraction
	}
}

// FilterMonth keeps the trips whose date falls within the given calendar month,
// first and last day inclusive. Trips with a zero date belong to no month.
func FilterMonth(trips []models.Trip, year int, month time.Month) []models.Trip {
	var filtered []models.Trip
	for i := range trips {
		if trips[i].Date.SameMonth(year, month) {
			filtered = append(filtered, trips[i])
		}
	}
	return filtered
}

// AggregateMonth computes the monthly recap for a snapshot of trips and rates.
//
// Mileage is evaluated once per vehicle rate rule across the whole month's
// group of trips, so a THRESHOLD tier is crossed at most once per rule. Mission
// rates contribute per trip, expenses sum as-is. The computation is pure and
// idempotent: the same snapshot always yields the same summary.
func AggregateMonth(trips []models.Trip, rules []models.VehicleRateRule, missionRates []models.DailyMissionRate, year int, month time.Month) MonthlySummary {
	summary := MonthlySummary{
		Year:          year,
		Month:         month,
		DistanceTotal: decimal.Zero,
		ExpenseTotal:  decimal.Zero,
		MissionTotal:  decimal.Zero,
		MileageTotal:  decimal.Zero,
		Total:         decimal.Zero,
	}

	inMonth := FilterMonth(trips, year, month)
	summary.TripCount = len(inMonth)

	ruleByID := make(map[uint]*models.VehicleRateRule, len(rules))
	for i := range rules {
		ruleByID[rules[i].ID] = &rules[i]
	}

	// Mileage: one evaluation per rule over its whole group. Groups whose rule
	// was deleted or deactivated report their distance but cost nothing.
	for _, group := range GroupByRule(inMonth) {
		result := ResolveMileage(group.Trips, ruleByID[group.RuleID])
		summary.RuleGroups = append(summary.RuleGroups, RuleGroupTotal{
			RuleID:        group.RuleID,
			TripCount:     len(group.Trips),
			TotalDistance: result.TotalDistance,
			TotalCost:     result.TotalCost,
		})
		summary.MileageTotal = summary.MileageTotal.Add(result.TotalCost)
	}

	for i := range inMonth {
		trip := &inMonth[i]

		expenseTotal := ExpenseTotal(trip)
		missionAmount := MissionRateAmount(trip, missionRates)
		status, fraction := ClassifyJustification(trip.Expenses)

		summary.DistanceTotal = summary.DistanceTotal.Add(trip.Distance())
		summary.ExpenseCount += len(trip.Expenses)
		summary.ExpenseTotal = summary.ExpenseTotal.Add(expenseTotal)
		summary.MissionTotal = summary.MissionTotal.Add(missionAmount)

		summary.Trips = append(summary.Trips, TripSummary{
			TripID:            trip.ID,
			Date:              trip.Date,
			Destination:       trip.Destination,
			Distance:          trip.Distance(),
			ExpenseTotal:      expenseTotal,
			ExpenseCount:      len(trip.Expenses),
			MissionAmount:     missionAmount,
			Justification:     status,
			JustifiedFraction: fraction,
		})
	}

	summary.Total = summary.MileageTotal.
		Add(summary.MissionTotal).
		Add(summary.ExpenseTotal)

	return summary
}
