package services

import (
	"context"
	"fmt"

	"ridereport/internal/domain"
	"ridereport/internal/utils"
)

// RideAggregator drives the pager and enricher to produce the enriched ride
// set for a date window.
type RideAggregator struct {
	Pager     ActivityPager
	Enricher  DetailEnricher
	RequestID string
}

// AggregateRides collects all activities in the window and enriches them.
// A mid-pagination failure still enriches whatever was collected: partial
// results are preferred to total failure, with the pager error carried in
// the result's error list.
func (a RideAggregator) AggregateRides(ctx context.Context, cred domain.Credential, window domain.DateWindow) (EnrichResult, error) {
	if !cred.Valid() {
		return EnrichResult{}, domain.ValidationError{Field: "credential", Msg: "missing session credential"}
	}
	if window.Start.IsZero() || window.End.IsZero() || window.End.Before(window.Start) {
		return EnrichResult{}, domain.ValidationError{Field: "dateWindow", Msg: "invalid date window"}
	}

	activities, pageErr := a.Pager.CollectActivities(ctx, cred, window)
	result := a.Enricher.Enrich(ctx, cred, activities, window)
	if pageErr != nil {
		result.Errors = append(result.Errors, EnrichError{Reason: fmt.Sprintf("pagination aborted: %v", pageErr)})
	}

	utils.LogEvent(a.RequestID, "aggregator", "aggregate_rides",
		fmt.Sprintf("rides=%d errors=%d", len(result.Rides), len(result.Errors)))
	return result, nil
}
