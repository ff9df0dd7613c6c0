package wheel

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidTag is returned when a compatibility tag string is malformed or
// violates the tag invariants.
var ErrInvalidTag = errors.New("invalid compatibility tag")

// tagTokenRE restricts the abi and platform parts to underscore-normalized
// tokens. This is not explicit in PEP 425 but implied by its FAQ on
// normalising non-alphanumeric characters to underscores. The python part
// carries no such restriction beyond being non-empty, since valid values are
// defined by each Python implementation.
var tagTokenRE = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// tagAxis is one axis (abi or platform) of a compatibility tag: either the
// wildcard ("none"/"any") or a non-empty token sequence. Values are built
// only through wildcardAxis and concreteAxis, so a concrete axis always has
// at least one token.
type tagAxis struct {
	any   bool
	parts []string
}

func wildcardAxis() tagAxis { return tagAxis{any: true} }

func concreteAxis(parts []string) tagAxis { return tagAxis{parts: parts} }

func (a tagAxis) equal(b tagAxis) bool {
	return a.any == b.any && slices.Equal(a.parts, b.parts)
}

// render joins the axis tokens with '.', or returns the wildcard literal.
func (a tagAxis) render(wildcard string) string {
	if a.any {
		return wildcard
	}
	return strings.Join(a.parts, ".")
}

// CompatibilityTag is a PEP 425 compatibility tag: an ordered sequence of
// python (runtime) identifiers plus an abi axis and a platform axis. A
// concrete abi with a wildcard platform is invalid and cannot be
// constructed; ParseTagParts rejects the combination.
//
// The zero value is not a valid tag. Construct through ParseTag or
// ParseTagParts.
type CompatibilityTag struct {
	python   []string
	abi      tagAxis
	platform tagAxis
}

// ParseTagParts validates and assembles a tag from its three dash-separated
// parts. Each part is split on '.' into its token sequence; abiPart "none"
// means any ABI and platformPart "any" means any platform. It fails when any
// part is empty, when the abi or platform part contains a character outside
// [a-zA-Z0-9_.], or when a concrete abi is paired with the wildcard
// platform.
func ParseTagParts(pythonPart, abiPart, platformPart string) (CompatibilityTag, error) {
	if pythonPart == "" || abiPart == "" || platformPart == "" {
		return CompatibilityTag{}, fmt.Errorf("%w: empty part", ErrInvalidTag)
	}
	if !tagTokenRE.MatchString(abiPart) || !tagTokenRE.MatchString(platformPart) {
		return CompatibilityTag{}, fmt.Errorf("%w: %s-%s-%s", ErrInvalidTag, pythonPart, abiPart, platformPart)
	}

	abi := wildcardAxis()
	if abiPart != "none" {
		abi = concreteAxis(strings.Split(abiPart, "."))
	}
	platform := wildcardAxis()
	if platformPart != "any" {
		platform = concreteAxis(strings.Split(platformPart, "."))
	}

	// A concrete ABI only makes sense against a concrete platform.
	if !abi.any && platform.any {
		return CompatibilityTag{}, fmt.Errorf("%w: concrete abi %q with wildcard platform", ErrInvalidTag, abiPart)
	}

	return CompatibilityTag{
		python:   strings.Split(pythonPart, "."),
		abi:      abi,
		platform: platform,
	}, nil
}

// ParseTag parses a full tag string of the form "python-abi-platform",
// splitting only at the first two dashes.
func ParseTag(raw string) (CompatibilityTag, error) {
	parts := strings.SplitN(raw, "-", 3)
	if len(parts) < 3 {
		return CompatibilityTag{}, fmt.Errorf("%w: %q", ErrInvalidTag, raw)
	}
	return ParseTagParts(parts[0], parts[1], parts[2])
}

// IsUniversal reports whether the tag declares the canonical universal wheel:
// pure, with exactly the py2 and py3 runtime markers.
func (t CompatibilityTag) IsUniversal() bool {
	return t.IsPure() && len(t.python) == 2 && t.python[0] == "py2" && t.python[1] == "py3"
}

// IsPure reports whether the tag constrains neither ABI nor platform.
func (t CompatibilityTag) IsPure() bool {
	return t.abi.any && t.platform.any
}

// AnyPlatform reports whether the platform axis is the wildcard "any".
func (t CompatibilityTag) AnyPlatform() bool { return t.platform.any }

// AnyABI reports whether the abi axis is the wildcard "none".
func (t CompatibilityTag) AnyABI() bool { return t.abi.any }

// PythonTags returns the runtime identifier sequence.
func (t CompatibilityTag) PythonTags() []string {
	return slices.Clone(t.python)
}

// ABITags returns the abi token sequence, or ["none"] for the wildcard.
func (t CompatibilityTag) ABITags() []string {
	if t.abi.any {
		return []string{"none"}
	}
	return slices.Clone(t.abi.parts)
}

// PlatformTags returns the platform token sequence, or ["any"] for the
// wildcard.
func (t CompatibilityTag) PlatformTags() []string {
	if t.platform.any {
		return []string{"any"}
	}
	return slices.Clone(t.platform.parts)
}

// Equal reports structural equality of two tags.
func (t CompatibilityTag) Equal(o CompatibilityTag) bool {
	return slices.Equal(t.python, o.python) && t.abi.equal(o.abi) && t.platform.equal(o.platform)
}

// String renders the tag in its canonical "python-abi-platform" form, the
// exact inverse of ParseTag for any tag this package can produce.
func (t CompatibilityTag) String() string {
	return strings.Join(t.python, ".") + "-" + t.abi.render("none") + "-" + t.platform.render("any")
}
