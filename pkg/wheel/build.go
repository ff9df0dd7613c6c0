package wheel

import (
	"strconv"
	"strings"
)

// BuildMarker is the optional build discriminator of a wheel filename: a
// leading run of ASCII digits (the ordinal) followed by an arbitrary suffix.
// It distinguishes wheels built from identical source with identical
// compatibility tags. The zero value {0, ""} is the minimum and stands in
// for an absent marker during selection.
type BuildMarker struct {
	Ordinal int
	Suffix  string
}

// ParseBuildMarker parses a build marker. The marker must start with at
// least one digit; everything after the digit run is the suffix.
func ParseBuildMarker(raw string) (BuildMarker, bool) {
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	ordinal, err := strconv.Atoi(raw[:i])
	if i == 0 || err != nil {
		return BuildMarker{}, false
	}
	return BuildMarker{Ordinal: ordinal, Suffix: raw[i:]}, true
}

// Compare orders build markers by ordinal first (numerically) and suffix
// second (lexicographically). It returns -1, 0 or +1.
func (b BuildMarker) Compare(o BuildMarker) int {
	if b.Ordinal != o.Ordinal {
		if b.Ordinal < o.Ordinal {
			return -1
		}
		return 1
	}
	return strings.Compare(b.Suffix, o.Suffix)
}

// String renders the marker exactly as it appeared in the filename.
func (b BuildMarker) String() string {
	return strconv.Itoa(b.Ordinal) + b.Suffix
}
