package types

import "strings"

// RawRow is one already-parsed export row: column header -> raw string value.
// Rows are transient; they are folded into DonorRecords and discarded.
type RawRow map[string]string

// fieldAliases maps each recognized field to the column names it may appear
// under, in lookup order. The export has been through a few schema revisions,
// so several fields answer to more than one header.
var fieldAliases = map[string][]string{
	"user_id":              {"user_id", "bridge_id", "id", "userID", "uid"},
	"name":                 {"name"},
	"blood_group":          {"blood_group", "bridge_blood_group"},
	"role":                 {"role"},
	"status":               {"user_donation_active_status", "status"},
	"donor_type":           {"donor_type"},
	"eligibility_status":   {"eligibility_status"},
	"last_donation_date":   {"last_donation_date"},
	"next_donation_date":   {"expected_next_transfusion_date", "next_eligible_date"},
	"donations_till_date":  {"donations_till_date"},
	"frequency_in_days":    {"frequency_in_days", "cycle_of_donations"},
	"registration_date":    {"registration_date"},
	"location":             {"location"},
	"phone":                {"phone"},
	"latitude":             {"latitude"},
	"longitude":            {"longitude"},
}

// Field resolves a recognized field name through the alias table and returns
// the first non-empty value. Unrecognized names return "".
func (r RawRow) Field(name string) string {
	for _, alias := range fieldAliases[name] {
		if v := strings.TrimSpace(r[alias]); v != "" {
			return v
		}
	}
	return ""
}
