package processor

import "lifeline/types"

// ComputeStats reduces a finalized donor record sequence into the dashboard
// summary. emergencyRows is counted during the fold over raw rows because a
// single donor can contribute several emergency-role rows.
func ComputeStats(donors []types.DonorRecord, emergencyRows int) types.Stats {
	stats := types.Stats{
		TotalDonors:     len(donors),
		EmergencyDonors: emergencyRows,
		BloodGroups:     make(map[string]int),
	}
	for i := range donors {
		d := &donors[i]
		if d.Status == "Active" {
			stats.ActiveDonors++
		}
		if d.Eligibility == "eligible" {
			stats.EligibleDonors++
		}
		// "N/A" stays out of the histogram
		if d.BloodGroup != "" && d.BloodGroup != "N/A" {
			stats.BloodGroups[d.BloodGroup]++
		}
	}
	return stats
}
