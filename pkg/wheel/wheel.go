package wheel

import (
	"errors"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ErrInvalidWheelName is returned when a filename does not match the PEP 427
// wheel grammar, or an embedded version, build marker or compatibility tag
// fails its own parse.
var ErrInvalidWheelName = errors.New("invalid wheel filename")

// wheelSuffix is the recognized archive extension for built distributions.
const wheelSuffix = ".whl"

// Name is a parsed PEP 427 wheel filename. Distribution is the name segment
// as it appears in the filename (escaped per the wheel spec, not
// re-normalized). Build is nil when the filename carries no build segment.
type Name struct {
	Distribution string
	Version      *goversion.Version
	Build        *BuildMarker
	Tag          CompatibilityTag
}

// ParseName parses a wheel filename. A successful parse guarantees every
// field is individually valid: the version parses, the build marker (if
// present) parses, and the compatibility tag satisfies its invariants.
func ParseName(filename string) (*Name, error) {
	stem, ok := strings.CutSuffix(filename, wheelSuffix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWheelName, filename)
	}

	// Split from the right into {name-version[-build], python, abi, platform}.
	// Only the leftmost segment may contain further dashes.
	var python, abi, platform string
	for _, dst := range []*string{&platform, &abi, &python} {
		i := strings.LastIndexByte(stem, '-')
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWheelName, filename)
		}
		*dst = stem[i+1:]
		stem = stem[:i]
	}

	tag, err := ParseTagParts(python, abi, platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWheelName, filename, err)
	}

	head := strings.Split(stem, "-")
	if len(head) < 2 || len(head) > 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWheelName, filename)
	}

	version, err := goversion.NewVersion(head[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: bad version %q", ErrInvalidWheelName, filename, head[1])
	}

	name := &Name{Distribution: head[0], Version: version, Tag: tag}
	if len(head) == 3 {
		build, ok := ParseBuildMarker(head[2])
		if !ok {
			return nil, fmt.Errorf("%w: %q: bad build marker %q", ErrInvalidWheelName, filename, head[2])
		}
		name.Build = &build
	}
	return name, nil
}

// String renders the full wheel filename including the .whl suffix, the
// exact inverse of ParseName for any value it can produce.
func (n *Name) String() string {
	var b strings.Builder
	b.WriteString(n.Distribution)
	b.WriteByte('-')
	b.WriteString(n.Version.Original())
	if n.Build != nil {
		b.WriteByte('-')
		b.WriteString(n.Build.String())
	}
	b.WriteByte('-')
	b.WriteString(n.Tag.String())
	b.WriteString(wheelSuffix)
	return b.String()
}
