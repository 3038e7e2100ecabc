package processor

import (
	"errors"
	"fmt"
	"strings"

	"lifeline/normalize"
	"lifeline/types"
)

// ErrNoRecords is returned when the input produced zero donor records, so
// callers can tell "could not process input" apart from an empty viewport.
var ErrNoRecords = errors.New("no donor records could be aggregated")

// Result is everything one aggregation pass produces. Donors, Stats and
// Skipped always describe the same finalized record sequence.
type Result struct {
	Donors  []types.DonorRecord `json:"donors"`
	Stats   types.Stats         `json:"stats"`
	Skipped int                 `json:"skipped"`
}

// accumulator is the in-progress merge state for one donor key. The parsed
// last-donation date rides along so repeat rows compare against it without
// re-parsing.
type accumulator struct {
	record      types.DonorRecord
	hasLastDate bool
	lastDate    int64 // unix seconds of the held last donation date
}

// Aggregate folds an ordered row sequence into one canonical record per donor
// key, in first-seen key order. Rows without a donor key are skipped and
// counted; per-field problems degrade to defaults and never abort the batch.
// The whole pass is deterministic: identical input yields identical output,
// bridge ids included.
func Aggregate(rows []types.RawRow) (*Result, error) {
	accs := make(map[string]*accumulator)
	var order []string
	skipped := 0
	emergencyRows := 0

	for _, row := range rows {
		if row.Field("role") == "Emergency Donor" {
			emergencyRows++
		}
		key := row.Field("user_id")
		if key == "" {
			skipped++
			continue
		}
		if acc, ok := accs[key]; ok {
			mergeRow(acc, row)
			continue
		}
		accs[key] = seed(row, key, len(accs)+1)
		order = append(order, key)
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("%w: %d rows in, %d skipped", ErrNoRecords, len(rows), skipped)
	}

	donors := make([]types.DonorRecord, 0, len(order))
	for i, key := range order {
		rec := accs[key].record
		rec.BridgeID = GenerateBridgeID(rec.Name, rec.BloodGroup, i+1)
		rec.Donations = SynthesizeHistory(rec.LastDonationDate, rec.TotalDonations, rec.CadenceDays, rec.RegistrationDate)
		donors = append(donors, rec)
	}

	return &Result{
		Donors:  donors,
		Stats:   ComputeStats(donors, emergencyRows),
		Skipped: skipped,
	}, nil
}

// seed builds the accumulator from a key's first row. ordinal is 1-based and
// only used for the fallback display name.
func seed(row types.RawRow, key string, ordinal int) *accumulator {
	role := row.Field("role")
	rec := types.DonorRecord{
		Key:              key,
		Name:             row.Field("name"),
		BloodGroup:       normalize.BloodGroup(row.Field("blood_group")),
		Role:             role,
		IsBridge:         strings.Contains(strings.ToLower(role), "bridge"),
		Status:           fallback(row.Field("status"), "Unknown"),
		DonorType:        fallback(row.Field("donor_type"), "Unknown"),
		Eligibility:      fallback(row.Field("eligibility_status"), "unknown"),
		NextDonationDate: row.Field("next_donation_date"),
		TotalDonations:   normalize.Count(row.Field("donations_till_date")),
		CadenceDays:      normalize.Cadence(row.Field("frequency_in_days")),
		RegistrationDate: row.Field("registration_date"),
		Location:         fallback(row.Field("location"), "Unknown"),
		Phone:            fallback(row.Field("phone"), "Unknown"),
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("Donor %d", ordinal)
	}
	if lat, ok := normalize.Coordinate(row.Field("latitude")); ok {
		rec.Latitude = &lat
	}
	if lng, ok := normalize.Coordinate(row.Field("longitude")); ok {
		rec.Longitude = &lng
	}

	acc := &accumulator{record: rec}
	if t, ok := normalize.ParseDate(row.Field("last_donation_date")); ok {
		acc.record.LastDonationDate = row.Field("last_donation_date")
		acc.lastDate = t.Unix()
		acc.hasLastDate = true
	}
	return acc
}

// mergeRow applies a repeat row for an already-seen key. Only two fields
// merge: the last donation date (strictly later parseable dates win, ties
// keep the existing value) and the donation total (strictly greater wins,
// so it is monotonically non-decreasing).
func mergeRow(acc *accumulator, row types.RawRow) {
	if raw := row.Field("last_donation_date"); raw != "" {
		if t, ok := normalize.ParseDate(raw); ok {
			if !acc.hasLastDate || t.Unix() > acc.lastDate {
				acc.record.LastDonationDate = raw
				acc.lastDate = t.Unix()
				acc.hasLastDate = true
			}
		}
		// unparsable incoming dates never override a held value
	}
	if total := normalize.Count(row.Field("donations_till_date")); total > acc.record.TotalDonations {
		acc.record.TotalDonations = total
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
