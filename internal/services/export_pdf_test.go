package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"ridereport/internal/domain/models"
)

func TestRenderRideTableProducesPDF(t *testing.T) {
	renderer := PDFTableRenderer{}
	data, err := renderer.RenderRideTable(twoRideSelection(), CoverOptions{Title: "November rides"})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	require.Equal(t, 1, pageCount(t, data))
}

func TestRenderRideTablePaginatesLargeSelections(t *testing.T) {
	var rides []models.EnrichedRide
	var ids []string
	for i := 0; i < 80; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		rides = append(rides, models.EnrichedRide{
			ID:            id,
			StartTime:     "2024-11-16T10:05:00Z",
			EndTime:       "2024-11-16T10:35:00Z",
			StartLocation: "Some very long pickup address, Sector 21, Example City",
			EndLocation:   "Another long dropoff address, Sector 42, Example City",
			Amount:        10,
			Currency:      "INR",
			DriverName:    "Driver",
			Vehicle:       "standard",
		})
		ids = append(ids, id)
	}
	sel, err := BuildSelection(rides, ids)
	require.NoError(t, err)

	data, err := PDFTableRenderer{}.RenderRideTable(sel, CoverOptions{})
	require.NoError(t, err)
	require.Greater(t, pageCount(t, data), 1, "content volume forces pagination")
}

func TestGrandTotalText(t *testing.T) {
	require.Equal(t, "Grand Total: ₹204.38", GrandTotalText(twoRideSelection()))
}

func TestRenderRideTableEmptySelection(t *testing.T) {
	_, err := PDFTableRenderer{}.RenderRideTable(models.Selection{}, CoverOptions{})
	require.Error(t, err)
}
