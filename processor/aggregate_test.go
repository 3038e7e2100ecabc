package processor

import (
	"errors"
	"reflect"
	"testing"

	"lifeline/types"
)

func TestAggregateMergesRepeatRows(t *testing.T) {
	rows := []types.RawRow{
		{
			"user_id":             "u1",
			"name":                "Asha Rao",
			"blood_group":         "O+",
			"donations_till_date": "3",
			"last_donation_date":  "01-01-2024",
			"frequency_in_days":   "90",
		},
		{
			"user_id":             "u1",
			"donations_till_date": "5",
			"last_donation_date":  "15-02-2024",
		},
	}

	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Donors) != 1 {
		t.Fatalf("got %d donors, want 1", len(res.Donors))
	}
	d := res.Donors[0]
	if d.TotalDonations != 5 {
		t.Errorf("TotalDonations = %d, want 5", d.TotalDonations)
	}
	if d.LastDonationDate != "15-02-2024" {
		t.Errorf("LastDonationDate = %q, want 15-02-2024", d.LastDonationDate)
	}
	if len(d.Donations) == 0 || len(d.Donations) > 5 {
		t.Fatalf("got %d donation events, want 1..5", len(d.Donations))
	}
	if d.Donations[0].Date != "15-02-2024" {
		t.Errorf("newest event = %q, want 15-02-2024", d.Donations[0].Date)
	}
}

func TestAggregateTotalIsMonotonic(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "u1", "donations_till_date": "7"},
		{"user_id": "u1", "donations_till_date": "4"},
		{"user_id": "u1", "donations_till_date": ""},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Donors[0].TotalDonations; got != 7 {
		t.Errorf("TotalDonations = %d, want 7", got)
	}
}

func TestAggregateDateMergeRules(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  string
	}{
		{
			name:  "later date wins",
			dates: []string{"01-01-2024", "15-02-2024"},
			want:  "15-02-2024",
		},
		{
			name:  "earlier date ignored",
			dates: []string{"15-02-2024", "01-01-2024"},
			want:  "15-02-2024",
		},
		{
			name:  "tie keeps existing spelling",
			dates: []string{"5-2-2024", "05-02-2024"},
			want:  "5-2-2024",
		},
		{
			name:  "unparsable never overrides",
			dates: []string{"15-02-2024", "soon", "2024-03-01"},
			want:  "15-02-2024",
		},
		{
			name:  "parseable replaces absent",
			dates: []string{"", "15-02-2024"},
			want:  "15-02-2024",
		},
		{
			name:  "all unparsable stays empty",
			dates: []string{"nope", "also nope"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []types.RawRow
			for _, d := range tt.dates {
				rows = append(rows, types.RawRow{"user_id": "u1", "last_donation_date": d})
			}
			res, err := Aggregate(rows)
			if err != nil {
				t.Fatal(err)
			}
			if got := res.Donors[0].LastDonationDate; got != tt.want {
				t.Errorf("LastDonationDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAggregateNormalizesBloodGroup(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "u2", "name": "Vikram Iyer", "blood_group": "B Positive"},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	d := res.Donors[0]
	if d.BloodGroup != "B+" {
		t.Errorf("BloodGroup = %q, want B+", d.BloodGroup)
	}
	if _, _, ok := d.Coordinates(); ok {
		t.Error("donor without coordinates reported usable coordinates")
	}
	if res.Stats.BloodGroups["B+"] != 1 {
		t.Errorf("histogram B+ = %d, want 1", res.Stats.BloodGroups["B+"])
	}
}

func TestAggregateDefaults(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "a"},
		{"user_id": "b", "blood_group": "vampire"},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	first := res.Donors[0]
	if first.Name != "Donor 1" {
		t.Errorf("Name = %q, want Donor 1", first.Name)
	}
	if first.Status != "Unknown" || first.DonorType != "Unknown" || first.Location != "Unknown" || first.Phone != "Unknown" {
		t.Errorf("string defaults wrong: %+v", first)
	}
	if first.Eligibility != "unknown" {
		t.Errorf("Eligibility = %q, want unknown", first.Eligibility)
	}
	if first.BloodGroup != "N/A" {
		t.Errorf("BloodGroup = %q, want N/A", first.BloodGroup)
	}
	if first.CadenceDays != 90 {
		t.Errorf("CadenceDays = %d, want 90", first.CadenceDays)
	}
	second := res.Donors[1]
	if second.Name != "Donor 2" {
		t.Errorf("second Name = %q, want Donor 2", second.Name)
	}
	if second.BloodGroup != "N/A" {
		t.Errorf("out-of-set BloodGroup = %q, want N/A", second.BloodGroup)
	}
	if len(res.Stats.BloodGroups) != 0 {
		t.Errorf("N/A leaked into histogram: %v", res.Stats.BloodGroups)
	}
}

func TestAggregateSkipsRowsWithoutKey(t *testing.T) {
	rows := []types.RawRow{
		{"name": "No Key"},
		{"user_id": "u1", "name": "Has Key"},
		{"user_id": "  ", "name": "Blank Key"},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Donors) != 1 {
		t.Fatalf("got %d donors, want 1", len(res.Donors))
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
}

func TestAggregateKeyAliases(t *testing.T) {
	rows := []types.RawRow{
		{"bridge_id": "u1", "name": "Via bridge_id"},
		{"uid": "u2", "name": "Via uid"},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Donors) != 2 {
		t.Fatalf("got %d donors, want 2", len(res.Donors))
	}
	if res.Donors[0].Key != "u1" || res.Donors[1].Key != "u2" {
		t.Errorf("keys = %q, %q", res.Donors[0].Key, res.Donors[1].Key)
	}
}

func TestAggregateNoRecords(t *testing.T) {
	for _, rows := range [][]types.RawRow{
		nil,
		{},
		{{"name": "keyless"}, {"location": "nowhere"}},
	} {
		_, err := Aggregate(rows)
		if !errors.Is(err, ErrNoRecords) {
			t.Errorf("Aggregate(%v) err = %v, want ErrNoRecords", rows, err)
		}
	}
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "c"},
		{"user_id": "a"},
		{"user_id": "b"},
		{"user_id": "a"}, // repeat must not reorder
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, d := range res.Donors {
		keys = append(keys, d.Key)
	}
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("order = %v, want %v", keys, want)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "u1", "name": "Asha Rao", "blood_group": "O+", "donations_till_date": "3", "last_donation_date": "01-01-2024"},
		{"user_id": "u2", "name": "Vikram Iyer", "blood_group": "B Positive"},
		{"user_id": "u1", "donations_till_date": "5", "last_donation_date": "15-02-2024"},
		{"name": "keyless"},
	}
	a, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical input disagree")
	}
	if a.Donors[0].BridgeID == "" || a.Donors[0].BridgeID != b.Donors[0].BridgeID {
		t.Errorf("bridge ids differ: %q vs %q", a.Donors[0].BridgeID, b.Donors[0].BridgeID)
	}
}

func TestAggregateStats(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "u1", "user_donation_active_status": "Active", "eligibility_status": "eligible", "blood_group": "O+", "role": "Emergency Donor"},
		{"user_id": "u2", "user_donation_active_status": "Inactive", "eligibility_status": "not eligible", "blood_group": "O+"},
		{"user_id": "u3", "blood_group": "junk"},
		{"user_id": "u1", "role": "Emergency Donor"}, // repeat emergency row still counts
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	s := res.Stats
	if s.TotalDonors != 3 {
		t.Errorf("TotalDonors = %d, want 3", s.TotalDonors)
	}
	if s.ActiveDonors != 1 {
		t.Errorf("ActiveDonors = %d, want 1", s.ActiveDonors)
	}
	if s.EligibleDonors != 1 {
		t.Errorf("EligibleDonors = %d, want 1", s.EligibleDonors)
	}
	if s.EmergencyDonors != 2 {
		t.Errorf("EmergencyDonors = %d, want 2", s.EmergencyDonors)
	}
	if s.BloodGroups["O+"] != 2 || len(s.BloodGroups) != 1 {
		t.Errorf("BloodGroups = %v, want map[O+:2]", s.BloodGroups)
	}
}

func TestAggregateBridgeRole(t *testing.T) {
	rows := []types.RawRow{
		{"user_id": "u1", "role": "Bridge Donor"},
		{"user_id": "u2", "role": "Fighter"},
	}
	res, err := Aggregate(rows)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Donors[0].IsBridge {
		t.Error("Bridge Donor not flagged as bridge")
	}
	if res.Donors[1].IsBridge {
		t.Error("Fighter wrongly flagged as bridge")
	}
}
