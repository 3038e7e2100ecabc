package processor

import (
	"fmt"

	"lifeline/normalize"
	"lifeline/types"
)

// SynthesizeHistory generates a plausible donation history for a donor whose
// export only carries a last date and a running total. It steps backward from
// lastDate in cadenceDays increments for at most total events, newest first,
// and stops early the first time a date would fall before the registration
// floor. Pure function of its inputs; no randomness.
func SynthesizeHistory(lastDate string, total, cadenceDays int, registrationFloor string) []types.DonationEvent {
	events := []types.DonationEvent{}
	if total <= 0 {
		return events
	}
	last, ok := normalize.ParseDate(lastDate)
	if !ok {
		return events
	}
	step := cadenceDays
	if step <= 0 {
		step = normalize.DefaultCadenceDays
	}
	floor, hasFloor := normalize.ParseDate(registrationFloor)

	for i := 0; i < total; i++ {
		d := last.AddDate(0, 0, -i*step)
		if hasFloor && d.Before(floor) {
			break
		}
		events = append(events, types.DonationEvent{
			ID:          fmt.Sprintf("don-%d", i+1),
			Date:        normalize.FormatDate(d),
			Location:    "Unknown",
			IsEmergency: false,
		})
	}
	return events
}
