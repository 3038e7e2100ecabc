// Package normalize turns raw export field strings into typed values.
// Everything here is a pure function; bad input degrades to a documented
// default instead of an error.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual date form used across the export (DD-MM-YYYY).
// The "2-1-2006" layout also accepts unpadded day and month digits.
const DateLayout = "2-1-2006"

// DefaultCadenceDays is the assumed spacing between donations when the
// export carries no usable cadence.
const DefaultCadenceDays = 90

// validBloodGroups is the closed set a blood group normalizes into.
var validBloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// ParseDate parses a DD-MM-YYYY string. ok is false for empty or unparsable
// input; callers treat that as an absent date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a date back into the export's DD-MM-YYYY form.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// BloodGroup normalizes free-text blood groups ("B Positive", " ab- ") into
// {A,B,AB,O}x{+,-}. Anything outside the set becomes "N/A".
func BloodGroup(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "N/A"
	}
	s = strings.NewReplacer(" Positive", "+", " Negative", "-").Replace(s)
	s = strings.ToUpper(strings.TrimSpace(s))
	if !validBloodGroups[s] {
		return "N/A"
	}
	return s
}

// Count parses a donation counter. Unparsable input counts as zero.
func Count(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Cadence parses a donation cadence in days, falling back to the default
// when the value is absent or non-positive.
func Cadence(s string) int {
	n := Count(s)
	if n <= 0 {
		return DefaultCadenceDays
	}
	return n
}

// Coordinate parses a decimal latitude or longitude. ok is false for empty,
// unparsable or non-finite values.
func Coordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
