// File: /services/export_service_test.go
package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
)

func sampleSummary() calculator.MonthlySummary {
	return calculator.MonthlySummary{
		Year:          2024,
		Month:         time.March,
		TripCount:     2,
		DistanceTotal: decimal.RequireFromString("150"),
		ExpenseCount:  3,
		ExpenseTotal:  decimal.RequireFromString("25"),
		MissionTotal:  decimal.RequireFromString("20"),
		MileageTotal:  decimal.RequireFromString("350"),
		Total:         decimal.RequireFromString("395"),
		Trips: []calculator.TripSummary{
			{
				TripID:        "t1",
				Date:          models.NewDateOnly(2024, time.March, 4),
				Destination:   "Chantier Nord",
				Distance:      decimal.RequireFromString("60"),
				ExpenseTotal:  decimal.RequireFromString("20"),
				ExpenseCount:  2,
				MissionAmount: decimal.RequireFromString("10"),
				Justification: calculator.PartiallyJustified,
			},
			{
				TripID:        "t2",
				Date:          models.NewDateOnly(2024, time.March, 12),
				Destination:   "Chantier Sud",
				Distance:      decimal.RequireFromString("90"),
				ExpenseTotal:  decimal.RequireFromString("5"),
				ExpenseCount:  1,
				MissionAmount: decimal.RequireFromString("10"),
				Justification: calculator.FullyJustified,
			},
		},
	}
}

func sampleUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Jean Dupont",
		Email: "jean@example.com",
		Role:  models.RoleAgent,
	}
}

func TestGenerateMonthlyCSV(t *testing.T) {
	es := NewExportService()

	data, err := es.GenerateMonthlyCSV(sampleSummary(), sampleUser())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Header + 2 trips + totals footer
	require.Len(t, records, 4)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "2024-03-04", records[1][0])
	assert.Equal(t, "60.00", records[1][2])
	assert.Equal(t, "partiallyJustified", records[1][6])
	assert.Equal(t, "TOTAL", records[3][0])
	assert.Equal(t, "150.00", records[3][2])
	assert.Equal(t, "395.00", records[3][6])
}

func TestGenerateMonthlyPDF(t *testing.T) {
	es := NewExportService()

	data, err := es.GenerateMonthlyPDF(sampleSummary(), sampleUser())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// PDF magic bytes
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestMonthlyReportFilename(t *testing.T) {
	es := NewExportService()

	assert.Equal(t, "recap_2024-03.csv", es.MonthlyReportFilename(2024, time.March, "csv"))
	assert.Equal(t, "recap_2024-12.pdf", es.MonthlyReportFilename(2024, time.December, "pdf"))
}
