package services

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ridereport/internal/domain/models"
)

func twoRideSelection() models.Selection {
	rides := []models.EnrichedRide{
		{
			ID:            "t1",
			StartTime:     "2024-11-16T10:05:00Z",
			EndTime:       "2024-11-16T10:35:00Z",
			StartLocation: "12 MG Road",
			EndLocation:   "Airport T2",
			Amount:        84.38,
			Currency:      "INR",
			DriverName:    "Ramesh",
			Vehicle:       "standard",
		},
		{
			ID:            "t2",
			StartTime:     "2024-11-17T08:00:00Z",
			EndTime:       "2024-11-17T08:40:00Z",
			StartLocation: "Airport T2",
			EndLocation:   "12 MG Road",
			Amount:        120.00,
			Currency:      "INR",
			DriverName:    "Suresh",
			Vehicle:       "auto",
		},
	}
	sel, _ := BuildSelection(rides, []string{"t1", "t2"})
	return sel
}

func TestCSVTotalsRow(t *testing.T) {
	out, err := CSVRenderer{}.Render(twoRideSelection())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, two rides, totals")
	require.Equal(t, "Total:,204.38,INR", lines[3])
}

func TestCSVUsesRawTimestamps(t *testing.T) {
	out, err := CSVRenderer{}.Render(twoRideSelection())
	require.NoError(t, err)
	require.Contains(t, out, "2024-11-16T10:05:00Z", "CSV keeps raw ISO timestamps")
	require.NotContains(t, out, "16 Nov 2024", "no human formatting in CSV")
}

func TestCSVQuoteEscapingRoundTrip(t *testing.T) {
	rides := []models.EnrichedRide{{
		ID:         "t1",
		DriverName: `Joe "Quotes" Smith`,
		Amount:     10,
		Currency:   "USD",
		Vehicle:    "standard",
	}}
	sel, err := BuildSelection(rides, []string{"t1"})
	require.NoError(t, err)

	out, err := CSVRenderer{}.Render(sel)
	require.NoError(t, err)
	require.Contains(t, out, `"Joe ""Quotes"" Smith"`, "embedded quotes doubled and field quoted")

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, `Joe "Quotes" Smith`, records[1][3], "re-splitting recovers the original")
}

func TestCSVEmptySelection(t *testing.T) {
	_, err := CSVRenderer{}.Render(models.Selection{})
	require.Error(t, err)
}
