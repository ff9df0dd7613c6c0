package wheel

import "errors"

// ErrNoMatch is returned by the selection functions when no record
// qualifies.
var ErrNoMatch = errors.New("no matching distribution")

// Kind classifies a distribution record by package type.
type Kind int

const (
	// KindOther is any package type this tool does not select from
	// (eggs, wininst installers, and so on).
	KindOther Kind = iota
	// KindSource is a source archive (sdist).
	KindSource
	// KindWheel is a built wheel (bdist_wheel).
	KindWheel
)

// Record is the projection of a distribution entry that selection needs:
// the filename to parse and the package kind to filter on. URL and
// UploadTime ride along untouched for the caller's benefit.
type Record struct {
	Filename   string
	Kind       Kind
	URL        string
	UploadTime string
}

// SelectSource returns the first source archive among records.
func SelectSource(records []Record) (*Record, error) {
	for i := range records {
		if records[i].Kind == KindSource {
			return &records[i], nil
		}
	}
	return nil, ErrNoMatch
}

// SelectExact returns the wheel whose compatibility tag equals tag,
// preferring the greatest build marker when several wheels share the tag.
// A wheel without a build segment counts as the minimum marker {0, ""}.
// Records that fail to parse are skipped.
func SelectExact(records []Record, tag CompatibilityTag) (*Record, error) {
	var best *Record
	var bestBuild BuildMarker
	for i := range records {
		if records[i].Kind != KindWheel {
			continue
		}
		name, err := ParseName(records[i].Filename)
		if err != nil || !name.Tag.Equal(tag) {
			continue
		}
		build := BuildMarker{}
		if name.Build != nil {
			build = *name.Build
		}
		// Last record wins on equal markers.
		if best == nil || build.Compare(bestBuild) >= 0 {
			best = &records[i]
			bestBuild = build
		}
	}
	if best == nil {
		return nil, ErrNoMatch
	}
	return best, nil
}

// SelectBest returns the most broadly compatible wheel among records,
// ranked by specificity class: universal, then pure, then any-platform,
// then any-ABI, then platform-specific. Build markers play no role here.
// Candidates in the same class tie, and the first one encountered wins.
// Records that fail to parse are skipped entirely.
func SelectBest(records []Record) (*Record, error) {
	var best *Record
	bestRank := -1
	for i := range records {
		if records[i].Kind != KindWheel {
			continue
		}
		name, err := ParseName(records[i].Filename)
		if err != nil {
			continue
		}
		if r := rank(name.Tag); r > bestRank {
			best = &records[i]
			bestRank = r
		}
	}
	if best == nil {
		return nil, ErrNoMatch
	}
	return best, nil
}

// rank maps a tag to its specificity class. Higher is more preferred.
func rank(t CompatibilityTag) int {
	switch {
	case t.IsUniversal():
		return 4
	case t.IsPure():
		return 3
	case t.AnyPlatform():
		return 2
	case t.AnyABI():
		return 1
	default:
		return 0
	}
}
