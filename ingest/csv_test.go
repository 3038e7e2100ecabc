package ingest

import (
	"errors"
	"strings"
	"testing"

	"lifeline/cluster"
	"lifeline/processor"
)

func TestReadRows(t *testing.T) {
	csvData := strings.Join([]string{
		"user_id,name,blood_group,donations_till_date",
		"u1,Asha Rao,O+,3",
		"u2,Vikram Iyer,B Positive,1",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["name"] != "Asha Rao" || rows[0]["blood_group"] != "O+" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1].Field("blood_group") != "B Positive" {
		t.Errorf("row 1 blood_group = %q", rows[1].Field("blood_group"))
	}
}

func TestReadRowsAliasHeaders(t *testing.T) {
	csvData := strings.Join([]string{
		"bridge_id,bridge_blood_group,cycle_of_donations",
		"u9,A-,120",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Field("user_id") != "u9" {
		t.Errorf("user_id via bridge_id = %q, want u9", row.Field("user_id"))
	}
	if row.Field("blood_group") != "A-" {
		t.Errorf("blood_group via bridge_blood_group = %q, want A-", row.Field("blood_group"))
	}
	if row.Field("frequency_in_days") != "120" {
		t.Errorf("frequency_in_days via cycle_of_donations = %q, want 120", row.Field("frequency_in_days"))
	}
}

func TestReadRowsRaggedAndQuoted(t *testing.T) {
	csvData := strings.Join([]string{
		"user_id,name,location",
		`u1,"Rao, Asha",Bengaluru`,
		"u2,Short Row",
		"u3,Long Row,Delhi,extra,fields",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0]["name"] != "Rao, Asha" {
		t.Errorf("quoted field = %q", rows[0]["name"])
	}
	if rows[1]["location"] != "" {
		t.Errorf("short row location = %q, want empty", rows[1]["location"])
	}
	if rows[2]["location"] != "Delhi" {
		t.Errorf("long row location = %q, want Delhi", rows[2]["location"])
	}
}

func TestReadRowsHeaderWhitespace(t *testing.T) {
	csvData := "user_id , name\nu1,Asha"
	rows, err := ReadRows(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Field("user_id") != "u1" || rows[0].Field("name") != "Asha" {
		t.Errorf("row = %v", rows[0])
	}
}

func TestReadRowsEmptyInput(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); err == nil {
		t.Error("missing header did not error")
	}
}

func TestBuildSnapshot(t *testing.T) {
	csvData := strings.Join([]string{
		"user_id,name,blood_group,donations_till_date,last_donation_date,latitude,longitude",
		"u1,Asha Rao,O+,3,01-01-2024,12.9716,77.5946",
		"u1,Asha Rao,O+,5,15-02-2024,12.9716,77.5946",
		"u2,Vikram Iyer,B Positive,1,,,",
		",Keyless,,,,,",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	snap, err := BuildSnapshot(rows, cluster.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Donors) != 2 {
		t.Fatalf("got %d donors, want 2", len(snap.Donors))
	}
	if snap.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", snap.Skipped)
	}
	d := snap.Donors[0]
	if d.TotalDonations != 5 || d.LastDonationDate != "15-02-2024" {
		t.Errorf("merged donor = %+v", d)
	}
	if got := snap.Index("").Size(); got != 1 {
		t.Errorf("index holds %d points, want 1 (only u1 has coordinates)", got)
	}
}

func TestBuildSnapshotNoUsableRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("user_id,name\n,Keyless"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildSnapshot(rows, cluster.Options{}); !errors.Is(err, processor.ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}
