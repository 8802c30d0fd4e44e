package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/utils"
)

// DefaultBatchSize bounds how many detail requests are in flight at once.
const DefaultBatchSize = 10

// TripDetailSource fetches the authoritative record for one trip.
type TripDetailSource interface {
	FetchTripDetail(ctx context.Context, cred domain.Credential, tripID string) (models.TripDetail, error)
}

// EnrichError records a single trip whose detail fetch failed. The trip is
// still represented in the output via its summary-level fallback.
type EnrichError struct {
	RideID string `json:"rideId"`
	Reason string `json:"reason"`
}

// EnrichResult exposes both successes and the per-trip error list.
type EnrichResult struct {
	Rides  []models.EnrichedRide `json:"rides"`
	Errors []EnrichError         `json:"errors,omitempty"`
}

// DetailEnricher turns summary activities into enriched rides in contiguous
// batches. Within a batch the detail requests run concurrently; batches run
// sequentially relative to each other to bound upstream load.
type DetailEnricher struct {
	Source    TripDetailSource
	BatchSize int
	RequestID string
}

// Enrich preserves input order in its output. A failed identifier does not
// fail its batch or sibling batches: the trip falls back to its coarser
// summary record (empty driver, empty dropoff location) and the failure is
// reported in the error list. This applies uniformly whether some or all
// identifiers of a batch fail.
func (e DetailEnricher) Enrich(ctx context.Context, cred domain.Credential, summaries []models.RawActivity, window domain.DateWindow) EnrichResult {
	size := e.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	result := EnrichResult{}
	for start := 0; start < len(summaries); start += size {
		end := start + size
		if end > len(summaries) {
			end = len(summaries)
		}
		batch := summaries[start:end]

		rides := make([]models.EnrichedRide, len(batch))
		errs := make([]error, len(batch))

		var wg sync.WaitGroup
		for i, summary := range batch {
			wg.Add(1)
			go func(i int, summary models.RawActivity) {
				defer wg.Done()
				detail, err := e.Source.FetchTripDetail(ctx, cred, summary.ID)
				if err != nil {
					errs[i] = err
					rides[i] = RideFromSummary(summary, window)
					return
				}
				rides[i] = RideFromDetail(detail)
			}(i, summary)
		}
		wg.Wait()

		for i := range batch {
			result.Rides = append(result.Rides, rides[i])
			if errs[i] != nil {
				result.Errors = append(result.Errors, EnrichError{RideID: batch[i].ID, Reason: errs[i].Error()})
			}
		}
	}

	if len(result.Errors) > 0 {
		utils.LogEvent(e.RequestID, "enricher", "partial_fallback", fmt.Sprintf("failed=%d of %d", len(result.Errors), len(summaries)))
	}
	return result
}

// RideFromDetail folds an authoritative trip detail into the canonical ride
// record.
func RideFromDetail(d models.TripDetail) models.EnrichedRide {
	amount, currency := utils.ParseFare(d.FareText)

	label := d.VehicleName
	if strings.TrimSpace(label) == "" {
		label = d.Receipt.VehicleType
	}
	category := domain.ClassifyVehicle(label)

	start, end := "", ""
	if n := len(d.Waypoints); n > 0 {
		start = d.Waypoints[0].Address
		end = d.Waypoints[n-1].Address
	}

	return models.EnrichedRide{
		ID:            d.ID,
		StartTime:     d.BeginTime,
		EndTime:       d.DropoffTime,
		StartLocation: start,
		EndLocation:   end,
		Amount:        amount,
		Currency:      currency,
		DriverName:    d.DriverName,
		Vehicle:       category,
		Status:        d.Status,
		MapURL:        d.MapURL,
		IsAutoType:    category.UsesSimpleReceiptFlow(),
	}
}

// RideFromSummary builds a structurally valid ride from a summary activity.
// Summary records carry less information: no driver, no dropoff location.
func RideFromSummary(a models.RawActivity, window domain.DateWindow) models.EnrichedRide {
	amount, currency := utils.ParseFare(a.Subtitle)
	if amount == 0 && strings.ContainsAny(a.Description, "₹€£$") {
		// Descriptions are usually addresses; only a currency symbol marks
		// one as carrying the fare.
		if v, c := utils.ParseFare(a.Description); v > 0 {
			amount, currency = v, c
		}
	}

	category := domain.ClassifyVehicle(a.Title)
	if category == domain.VehicleStandard && strings.TrimSpace(a.Title) == "" {
		category = domain.ClassifyVehicleImage(a.ImageURL)
	}

	return models.EnrichedRide{
		ID:            a.ID,
		StartTime:     summaryStartTime(a.Subtitle, window),
		StartLocation: a.Description,
		Amount:        amount,
		Currency:      currency,
		Vehicle:       category,
		Status:        domain.Status("COMPLETED"),
		MapURL:        a.MapImageURL,
		IsAutoType:    category.UsesSimpleReceiptFlow(),
	}
}

// summaryStartTime pulls a timestamp out of an activity subtitle such as
// "16 Nov • 10:05 AM • ₹84.38". Yearless dates get their year inferred from
// the request window. When nothing parses the original segment is kept.
func summaryStartTime(subtitle string, window domain.DateWindow) string {
	segment := subtitle
	if idx := strings.IndexRune(subtitle, '•'); idx >= 0 {
		segment = subtitle[:idx]
	}
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return ""
	}
	if t, ok := utils.ParseTimestamp(segment); ok {
		return t.UTC().Format(time.RFC3339)
	}
	if t, ok := utils.ResolveYearlessDate(segment, window.Start, window.End); ok {
		return t.Format(time.RFC3339)
	}
	return segment
}
