package wheel

import (
	"errors"
	"slices"
	"testing"
)

func TestParseTag_RoundTrip(t *testing.T) {
	// Canonical tag strings must survive parse + String unchanged.
	for _, raw := range []string{
		"py3-none-any",
		"py2.py3-none-any",
		"cp312-cp312-manylinux_2_17_x86_64",
		"cp39-abi3-macosx_10_9_x86_64.macosx_11_0_arm64",
		"py3-none-win_amd64",
		"ip2-none-any",
	} {
		t.Run(raw, func(t *testing.T) {
			tag, err := ParseTag(raw)
			if err != nil {
				t.Fatalf("ParseTag(%q) failed: %v", raw, err)
			}
			if got := tag.String(); got != raw {
				t.Errorf("round trip: expected %q, got %q", raw, got)
			}
		})
	}
}

func TestParseTag_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"too few segments", "py3-none"},
		{"single segment", "py3"},
		{"empty", ""},
		{"empty platform", "py3-none-"},
		{"empty abi", "py3--any"},
		{"concrete abi wildcard platform", "cp312-cp312-any"},
		{"bad abi char", "py3-no+ne-any"},
		{"bad platform char", "py3-none-linux/x86"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTag(tt.raw); !errors.Is(err, ErrInvalidTag) {
				t.Errorf("ParseTag(%q): expected ErrInvalidTag, got %v", tt.raw, err)
			}
		})
	}
}

func TestParseTagParts_ConcreteABIRequiresConcretePlatform(t *testing.T) {
	if _, err := ParseTagParts("cp312", "cp312", "any"); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag for concrete abi with wildcard platform, got %v", err)
	}
	// The reverse is fine: wildcard abi, concrete platform.
	if _, err := ParseTagParts("py3", "none", "linux_x86_64"); err != nil {
		t.Fatalf("wildcard abi with concrete platform should parse: %v", err)
	}
}

func TestCompatibilityTag_Predicates(t *testing.T) {
	tests := []struct {
		raw                                  string
		universal, pure, anyPlat, anyABI bool
	}{
		{"py2.py3-none-any", true, true, true, true},
		{"py3-none-any", false, true, true, true},
		{"py2-none-any", false, true, true, true},
		{"py3.py2-none-any", false, true, true, true}, // order matters for universal
		{"py3-none-manylinux1_x86_64", false, false, false, true},
		{"cp312-cp312-manylinux_2_17_x86_64", false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tag, err := ParseTag(tt.raw)
			if err != nil {
				t.Fatalf("ParseTag(%q) failed: %v", tt.raw, err)
			}
			if got := tag.IsUniversal(); got != tt.universal {
				t.Errorf("IsUniversal: expected %v, got %v", tt.universal, got)
			}
			if got := tag.IsPure(); got != tt.pure {
				t.Errorf("IsPure: expected %v, got %v", tt.pure, got)
			}
			if got := tag.AnyPlatform(); got != tt.anyPlat {
				t.Errorf("AnyPlatform: expected %v, got %v", tt.anyPlat, got)
			}
			if got := tag.AnyABI(); got != tt.anyABI {
				t.Errorf("AnyABI: expected %v, got %v", tt.anyABI, got)
			}
		})
	}
}

func TestCompatibilityTag_Accessors(t *testing.T) {
	tag, err := ParseTag("py2.py3-none-any")
	if err != nil {
		t.Fatal(err)
	}
	if got := tag.PythonTags(); !slices.Equal(got, []string{"py2", "py3"}) {
		t.Errorf("PythonTags: got %v", got)
	}
	// Wildcard axes render as their literal tokens.
	if got := tag.ABITags(); !slices.Equal(got, []string{"none"}) {
		t.Errorf("ABITags: got %v", got)
	}
	if got := tag.PlatformTags(); !slices.Equal(got, []string{"any"}) {
		t.Errorf("PlatformTags: got %v", got)
	}

	concrete, err := ParseTag("cp39-abi3-macosx_10_9_x86_64.macosx_11_0_arm64")
	if err != nil {
		t.Fatal(err)
	}
	if got := concrete.PlatformTags(); !slices.Equal(got, []string{"macosx_10_9_x86_64", "macosx_11_0_arm64"}) {
		t.Errorf("PlatformTags: got %v", got)
	}
}

func TestCompatibilityTag_Equal(t *testing.T) {
	a, _ := ParseTag("py3-none-any")
	b, _ := ParseTag("py3-none-any")
	c, _ := ParseTag("py2-none-any")
	if !a.Equal(b) {
		t.Error("identical tags should be equal")
	}
	if a.Equal(c) {
		t.Error("different runtimes should not be equal")
	}
}
