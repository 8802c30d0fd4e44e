package domain

import "testing"

func TestClassifyVehicle(t *testing.T) {
	cases := []struct {
		label  string
		want   VehicleCategory
		simple bool
	}{
		{"UberXL", VehicleStandard, false},
		{"Moto", VehicleBike, true},
		{"Auto", VehicleAuto, true},
		{"Uber Auto", VehicleAuto, true},
		{"Tuk Tuk", VehicleAuto, true},
		{"BIKE", VehicleBike, true},
		{"Premier", VehicleStandard, false},
		{"", VehicleStandard, false},
	}

	for _, tc := range cases {
		got := ClassifyVehicle(tc.label)
		if got != tc.want {
			t.Errorf("ClassifyVehicle(%q) = %q, want %q", tc.label, got, tc.want)
		}
		if got.UsesSimpleReceiptFlow() != tc.simple {
			t.Errorf("ClassifyVehicle(%q).UsesSimpleReceiptFlow() = %v, want %v", tc.label, got.UsesSimpleReceiptFlow(), tc.simple)
		}
	}
}

func TestClassifyVehicleImage(t *testing.T) {
	if got := ClassifyVehicleImage("https://cdn.example.com/img/moto_v2.png"); got != VehicleBike {
		t.Errorf("image url classification = %q, want bike", got)
	}
	if got := ClassifyVehicleImage("https://cdn.example.com/img/sedan.png"); got != VehicleStandard {
		t.Errorf("image url classification = %q, want standard", got)
	}
}
