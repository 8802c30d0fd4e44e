package services

import (
	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
)

// ApplyAmountEdits overlays the edit-log onto a ride snapshot. Rides with an
// active edit carry their pre-edit amount in OriginalAmount; the snapshot
// itself is never mutated in place.
func ApplyAmountEdits(rides []models.EnrichedRide, edits map[string]models.AmountEdit) []models.EnrichedRide {
	if len(edits) == 0 {
		return rides
	}
	out := make([]models.EnrichedRide, len(rides))
	copy(out, rides)
	for i := range out {
		if edit, ok := edits[out[i].ID]; ok {
			original := edit.OriginalAmount
			out[i].OriginalAmount = &original
			out[i].Amount = edit.Amount
		}
	}
	return out
}

// BuildSelection picks the chosen subset in ride-set order and derives the
// count, the arithmetic amount sum, and the dominant currency (first
// selected ride). Mixed-currency selections are summed without conversion
// on purpose.
func BuildSelection(rides []models.EnrichedRide, chosenIDs []string) (models.Selection, error) {
	if len(chosenIDs) == 0 {
		return models.Selection{}, domain.ValidationError{Field: "rideIds", Msg: "no rides selected"}
	}

	chosen := make(map[string]bool, len(chosenIDs))
	for _, id := range chosenIDs {
		chosen[id] = true
	}

	sel := models.Selection{}
	for _, r := range rides {
		if !chosen[r.ID] {
			continue
		}
		sel.Rides = append(sel.Rides, r)
		sel.TotalAmount += r.Amount
		if sel.Currency == "" {
			sel.Currency = r.Currency
		}
	}
	sel.SelectedCount = len(sel.Rides)

	if sel.SelectedCount == 0 {
		return models.Selection{}, domain.NotFoundError{Resource: "selected rides"}
	}
	return sel, nil
}
