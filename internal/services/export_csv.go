package services

import (
	"encoding/csv"
	"strconv"
	"strings"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/utils"
)

var csvHeader = []string{
	"Index", "Pickup Time", "Dropoff Time", "Driver", "Vehicle",
	"Pickup Address", "Dropoff Address", "Amount", "Currency",
}

// CSVRenderer renders a selection into CSV text. Timestamps stay in their
// raw provider form, not the human-formatted strings used in the PDF.
type CSVRenderer struct{}

// Render emits header, one row per ride with two-decimal amounts, and a
// trailing totals row.
func (CSVRenderer) Render(sel models.Selection) (string, error) {
	if sel.SelectedCount == 0 {
		return "", domain.ValidationError{Field: "selection", Msg: "no rides selected"}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", domain.InternalError{Msg: "write csv header", Err: err}
	}
	for i, ride := range sel.Rides {
		row := []string{
			strconv.Itoa(i + 1),
			ride.StartTime,
			ride.EndTime,
			ride.DriverName,
			string(ride.Vehicle),
			ride.StartLocation,
			ride.EndLocation,
			utils.FormatMoney(ride.Amount),
			ride.Currency,
		}
		if err := w.Write(row); err != nil {
			return "", domain.InternalError{Msg: "write csv row", Err: err}
		}
	}
	if err := w.Write([]string{"Total:", utils.FormatMoney(sel.TotalAmount), sel.Currency}); err != nil {
		return "", domain.InternalError{Msg: "write csv totals", Err: err}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.InternalError{Msg: "flush csv", Err: err}
	}
	return sb.String(), nil
}
