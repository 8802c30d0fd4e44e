package provider

import (
	"context"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
)

type tripEnvelope struct {
	Data struct {
		GetTrip struct {
			Trip struct {
				UUID        string   `json:"uuid"`
				BeginTime   string   `json:"beginTripTime"`
				DropoffTime string   `json:"dropoffTime"`
				Waypoints   []string `json:"waypoints"`
				DriverName  string   `json:"driver"`
				Fare        string   `json:"fare"`
				Status      string   `json:"status"`
				VehicleName string   `json:"vehicleDisplayName"`
				CityID      string   `json:"cityID"`
				CountryID   string   `json:"countryID"`
			} `json:"trip"`
			MapURL  string `json:"mapURL"`
			Receipt struct {
				CarYear     string `json:"carMake"`
				Distance    string `json:"distance"`
				Duration    string `json:"duration"`
				VehicleType string `json:"vehicleType"`
			} `json:"receipt"`
		} `json:"getTrip"`
	} `json:"data"`
}

// FetchTripDetail retrieves the authoritative record for one trip.
func (c *Client) FetchTripDetail(ctx context.Context, cred domain.Credential, tripID string) (models.TripDetail, error) {
	if tripID == "" {
		return models.TripDetail{}, domain.ValidationError{Field: "tripId", Msg: "missing trip id"}
	}

	var env tripEnvelope
	err := c.postGraphQL(ctx, cred, "GetTrip", map[string]any{"tripUUID": tripID}, &env)
	if err != nil {
		return models.TripDetail{}, err
	}

	t := env.Data.GetTrip
	detail := models.TripDetail{
		ID:          t.Trip.UUID,
		BeginTime:   t.Trip.BeginTime,
		DropoffTime: t.Trip.DropoffTime,
		DriverName:  t.Trip.DriverName,
		FareText:    t.Trip.Fare,
		Status:      domain.Status(t.Trip.Status),
		VehicleName: t.Trip.VehicleName,
		CityID:      t.Trip.CityID,
		CountryID:   t.Trip.CountryID,
		MapURL:      t.MapURL,
		Receipt: models.ReceiptInfo{
			CarYear:     t.Receipt.CarYear,
			Distance:    t.Receipt.Distance,
			Duration:    t.Receipt.Duration,
			VehicleType: t.Receipt.VehicleType,
		},
	}
	if detail.ID == "" {
		detail.ID = tripID
	}
	for _, w := range t.Trip.Waypoints {
		detail.Waypoints = append(detail.Waypoints, models.Waypoint{Address: w})
	}
	return detail, nil
}
