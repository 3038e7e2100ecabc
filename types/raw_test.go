package types

import (
	"math"
	"testing"
)

func TestRawRowField(t *testing.T) {
	tests := []struct {
		name string
		row  RawRow
		get  string
		want string
	}{
		{
			name: "canonical header",
			row:  RawRow{"user_id": "u1"},
			get:  "user_id",
			want: "u1",
		},
		{
			name: "alias header",
			row:  RawRow{"bridge_id": "u1"},
			get:  "user_id",
			want: "u1",
		},
		{
			name: "first non-empty alias wins",
			row:  RawRow{"user_id": "", "bridge_id": "u2"},
			get:  "user_id",
			want: "u2",
		},
		{
			name: "canonical beats alias when both present",
			row:  RawRow{"user_id": "u1", "bridge_id": "u2"},
			get:  "user_id",
			want: "u1",
		},
		{
			name: "values are trimmed",
			row:  RawRow{"name": "  Asha Rao  "},
			get:  "name",
			want: "Asha Rao",
		},
		{
			name: "whitespace-only counts as absent",
			row:  RawRow{"user_id": "   ", "uid": "u3"},
			get:  "user_id",
			want: "u3",
		},
		{
			name: "unrecognized field",
			row:  RawRow{"mystery": "x"},
			get:  "mystery",
			want: "",
		},
		{
			name: "status alias order",
			row:  RawRow{"status": "Inactive", "user_donation_active_status": "Active"},
			get:  "status",
			want: "Active",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Field(tt.get); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.get, got, tt.want)
			}
		})
	}
}

func TestDonorRecordCoordinates(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		donor  DonorRecord
		wantOK bool
	}{
		{"both present", DonorRecord{Latitude: f(12.97), Longitude: f(77.59)}, true},
		{"zero zero is valid", DonorRecord{Latitude: f(0), Longitude: f(0)}, true},
		{"missing longitude", DonorRecord{Latitude: f(12.97)}, false},
		{"missing both", DonorRecord{}, false},
		{"nan latitude", DonorRecord{Latitude: &nan, Longitude: f(77.59)}, false},
		{"infinite longitude", DonorRecord{Latitude: f(12.97), Longitude: &inf}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, ok := tt.donor.Coordinates()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (lat != *tt.donor.Latitude || lng != *tt.donor.Longitude) {
				t.Errorf("got (%v, %v)", lat, lng)
			}
		})
	}
}
