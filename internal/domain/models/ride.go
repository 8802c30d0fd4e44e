package models

import "ridereport/internal/domain"

// ActivityButton mirrors an action button attached to an activity card.
type ActivityButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// RawActivity is a provider-reported trip summary, pre-enrichment. It is
// discarded once the trip has been enriched.
type RawActivity struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Subtitle      string           `json:"subtitle"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"imageUrl"`
	MapImageURL   string           `json:"mapImageUrl"`
	Buttons       []ActivityButton `json:"buttons,omitempty"`
	CursorContext string           `json:"-"`
}

// Waypoint is one stop of a trip, in visit order.
type Waypoint struct {
	Address string `json:"address"`
}

// ReceiptInfo carries receipt-level metadata from the trip detail payload.
type ReceiptInfo struct {
	CarYear     string `json:"carYear"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	VehicleType string `json:"vehicleType"`
}

// TripDetail is the authoritative provider record for one trip, fetched once.
type TripDetail struct {
	ID          string        `json:"id"`
	BeginTime   string        `json:"beginTime"`
	DropoffTime string        `json:"dropoffTime"`
	Waypoints   []Waypoint    `json:"waypoints"`
	DriverName  string        `json:"driverName"`
	FareText    string        `json:"fareText"`
	Status      domain.Status `json:"status"`
	VehicleName string        `json:"vehicleName"`
	CityID      string        `json:"cityId"`
	CountryID   string        `json:"countryId"`
	MapURL      string        `json:"mapUrl"`
	Receipt     ReceiptInfo   `json:"receipt"`
}

// EnrichedRide is the canonical post-reconciliation ride record used by the
// exports. Amount is never negative; Currency is one of the closed set
// resolved by the fare parser. OriginalAmount is set only while a local
// amount override is active.
type EnrichedRide struct {
	ID             string                 `json:"id"`
	StartTime      string                 `json:"startTime"`
	EndTime        string                 `json:"endTime"`
	StartLocation  string                 `json:"startLocation"`
	EndLocation    string                 `json:"endLocation"`
	Amount         float64                `json:"amount"`
	Currency       string                 `json:"currency"`
	DriverName     string                 `json:"driverName"`
	Vehicle        domain.VehicleCategory `json:"vehicle"`
	Status         domain.Status          `json:"status"`
	MapURL         string                 `json:"mapUrl"`
	IsAutoType     bool                   `json:"isAutoType"`
	OriginalAmount *float64               `json:"originalAmount,omitempty"`
}

// Selection is the user-chosen subset of rides targeted by an export.
// TotalAmount is an arithmetic sum; mixed-currency selections are summed
// without conversion and the currency is taken from the first ride.
type Selection struct {
	Rides         []EnrichedRide `json:"rides"`
	SelectedCount int            `json:"selectedCount"`
	TotalAmount   float64        `json:"totalAmount"`
	Currency      string         `json:"currency"`
}

// AmountEdit is one entry of the per-session amount edit-log, kept separate
// from the immutable ride snapshot. Reverting an edit deletes the entry.
type AmountEdit struct {
	RideID         string  `json:"rideId"`
	Amount         float64 `json:"amount"`
	OriginalAmount float64 `json:"originalAmount"`
}

// BillingDocument is the binary receipt or invoice payload for one trip.
// A document either resolved or failed; failures are never retried.
type BillingDocument struct {
	RideID string `json:"rideId"`
	Data   []byte `json:"-"`
	Err    string `json:"error,omitempty"`
}

// Resolved reports whether the document fetch produced a payload.
func (d BillingDocument) Resolved() bool {
	return d.Err == "" && len(d.Data) > 0
}
