package domain

import "strings"

// VehicleCategory is the coarse vehicle bucket used to pick a receipt
// retrieval strategy.
type VehicleCategory string

const (
	VehicleStandard VehicleCategory = "standard"
	VehicleAuto     VehicleCategory = "auto"
	VehicleBike     VehicleCategory = "bike"
)

// UsesSimpleReceiptFlow reports whether the category skips the invoice
// listing and goes straight to the direct receipt endpoint.
func (v VehicleCategory) UsesSimpleReceiptFlow() bool {
	return v == VehicleAuto || v == VehicleBike
}

// ClassifyVehicle buckets a vehicle display name. Matching is
// case-insensitive substring matching; unknown labels are standard.
func ClassifyVehicle(label string) VehicleCategory {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "moto") || strings.Contains(l, "bike"):
		return VehicleBike
	case strings.Contains(l, "auto") || strings.Contains(l, "tuk"):
		return VehicleAuto
	default:
		return VehicleStandard
	}
}

// ClassifyVehicleImage applies the same keyword set to an image URL when no
// display name is available.
func ClassifyVehicleImage(url string) VehicleCategory {
	return ClassifyVehicle(url)
}
