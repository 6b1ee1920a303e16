package types

import (
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
)

// Mask redacts a secret value for storage and display. At most four
// characters survive from each end; anything shorter than 8 characters is
// fully replaced so prefix knowledge alone cannot reconstruct it.
func Mask(s string) string {
	if len(s) < 8 {
		return "********"
	}
	if len(s) == 8 {
		return s[:2] + "…" + s[len(s)-2:]
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// FindingID derives a stable identifier from the fields that make a finding
// distinct. Two detectors reporting the same issue at the same location
// collapse to the same ID.
func FindingID(t FindingType, loc Location, evidence string) string {
	sum := xxhash.Sum64String(string(t) + "|" + loc.String() + "|" + strconv.Itoa(loc.Offset) + "|" + evidence)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
