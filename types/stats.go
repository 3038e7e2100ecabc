package types

// Stats is the summary computed over a finalized donor record set.
// EmergencyDonors counts raw rows, not aggregated records, since one donor
// may have contributed several emergency-role rows.
type Stats struct {
	TotalDonors     int            `json:"totalDonors"`
	ActiveDonors    int            `json:"activeDonors"`
	EmergencyDonors int            `json:"emergencyDonors"`
	EligibleDonors  int            `json:"eligibleDonors"`
	BloodGroups     map[string]int `json:"bloodGroups"`
}
