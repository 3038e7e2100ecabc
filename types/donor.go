package types

import "math"

// DonorRecord is the canonical aggregate for one donor key. It is built once
// per dataset snapshot and never mutated afterwards.
type DonorRecord struct {
	Key              string          `json:"key"`
	Name             string          `json:"name"`
	BloodGroup       string          `json:"bloodGroup"`
	Role             string          `json:"role"`
	IsBridge         bool            `json:"isBridge"`
	Status           string          `json:"status"`
	DonorType        string          `json:"donorType"`
	Eligibility      string          `json:"eligibility"`
	LastDonationDate string          `json:"lastDonationDate"`
	NextDonationDate string          `json:"nextDonationDate"`
	TotalDonations   int             `json:"totalDonations"`
	CadenceDays      int             `json:"cadenceDays"`
	RegistrationDate string          `json:"registrationDate"`
	Location         string          `json:"location"`
	Phone            string          `json:"phone"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	BridgeID         string          `json:"bridgeId"`
	Donations        []DonationEvent `json:"donations"`
}

// DonationEvent is a single donation in a donor's history. Synthetic unless
// sourced; it carries no identity beyond its sequential id.
type DonationEvent struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	IsEmergency bool   `json:"isEmergency"`
}

// Coordinates returns the donor's position when both latitude and longitude
// are present and finite. Anything else keeps the donor out of the spatial
// index, never indexed with a placeholder.
func (d *DonorRecord) Coordinates() (lat, lng float64, ok bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return 0, 0, false
	}
	lat, lng = *d.Latitude, *d.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, 0, false
	}
	return lat, lng, true
}
