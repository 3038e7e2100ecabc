package processor

import (
	"fmt"
	"strings"
	"unicode"
)

// GenerateBridgeID derives the human-readable bridge identifier for a record:
// lowercase initials of each name token, the lowercase alphanumeric-filtered
// blood group, an underscore, and the zero-padded 1-based ordinal.
// Two donors sharing initials and blood group differ only in the ordinal;
// that is accepted, the id is a display handle, not a unique key.
func GenerateBridgeID(name, bloodGroup string, ordinal int) string {
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			initials.WriteRune(unicode.ToLower(r))
			break
		}
	}
	var bg strings.Builder
	for _, r := range strings.ToLower(bloodGroup) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			bg.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s%s_%03d", initials.String(), bg.String(), ordinal)
}
