// File: /services/export_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"notedefrais-api/calculator"
	"notedefrais-api/models"
)

// ExportService renders monthly recaps as spreadsheet and document artifacts
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// MonthlyReportFilename creates a descriptive filename for a monthly export
func (es *ExportService) MonthlyReportFilename(year int, month time.Month, extension string) string {
	return fmt.Sprintf("recap_%04d-%02d.%s", year, int(month), extension)
}

// GenerateMonthlyCSV generates a CSV recap from a monthly summary
func (es *ExportService) GenerateMonthlyCSV(summary calculator.MonthlySummary, user *models.User) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	// Write header
	header := []string{"Date", "Destination", "Distance (km)", "Dépenses", "Nb dépenses", "Tarif journalier", "Justification"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range summary.Trips {
		trip := &summary.Trips[i]

		row := []string{
			trip.Date.Format("2006-01-02"),
			trip.Destination,
			trip.Distance.StringFixed(2),
			trip.ExpenseTotal.StringFixed(2),
			strconv.Itoa(trip.ExpenseCount),
			trip.MissionAmount.StringFixed(2),
			string(trip.Justification),
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	// Totals footer
	totals := []string{
		"TOTAL",
		"",
		summary.DistanceTotal.StringFixed(2),
		summary.ExpenseTotal.StringFixed(2),
		strconv.Itoa(summary.ExpenseCount),
		summary.MissionTotal.StringFixed(2),
		summary.Total.StringFixed(2),
	}
	if err := writer.Write(totals); err != nil {
		return nil, fmt.Errorf("failed to write CSV totals: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// GenerateMonthlyPDF renders a monthly recap document
func (es *ExportService) GenerateMonthlyPDF(summary calculator.MonthlySummary, user *models.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Récapitulatif mensuel des frais", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New(user.Name, props.Text{Style: fontstyle.Bold}),
			text.New(user.Email, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Période : %04d-%02d", summary.Year, int(summary.Month)), props.Text{Top: 0}),
			text.New(fmt.Sprintf("Déplacements : %d", summary.TripCount), props.Text{Top: 5}),
		),
	)

	// Table Header
	m.AddRow(8,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Destination", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Distance", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Dépenses", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Tarif jour", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for i := range summary.Trips {
		trip := &summary.Trips[i]
		m.AddRow(7,
			text.NewCol(2, trip.Date.Format("2006-01-02"), props.Text{Size: 9}),
			text.NewCol(4, trip.Destination, props.Text{Size: 9}),
			text.NewCol(2, trip.Distance.StringFixed(2)+" km", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, trip.ExpenseTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, trip.MissionAmount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Footer totals
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Distance totale", props.Text{Size: 9}),
		text.NewCol(3, summary.DistanceTotal.StringFixed(2)+" km", props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Indemnités kilométriques", props.Text{Size: 9}),
		text.NewCol(3, summary.MileageTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Tarifs journaliers", props.Text{Size: 9}),
		text.NewCol(3, summary.MissionTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Dépenses", props.Text{Size: 9}),
		text.NewCol(3, summary.ExpenseTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Total à rembourser", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(3, summary.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}
