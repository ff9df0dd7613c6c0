package wheel

import "testing"

func TestParseBuildMarker(t *testing.T) {
	tests := []struct {
		raw     string
		ordinal int
		suffix  string
	}{
		{"1", 1, ""},
		{"0", 0, ""},
		{"10", 10, ""},
		{"1a", 1, "a"},
		{"42rc1", 42, "rc1"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			b, ok := ParseBuildMarker(tt.raw)
			if !ok {
				t.Fatalf("ParseBuildMarker(%q) failed", tt.raw)
			}
			if b.Ordinal != tt.ordinal || b.Suffix != tt.suffix {
				t.Errorf("expected {%d %q}, got {%d %q}", tt.ordinal, tt.suffix, b.Ordinal, b.Suffix)
			}
			if got := b.String(); got != tt.raw {
				t.Errorf("String: expected %q, got %q", tt.raw, got)
			}
		})
	}
}

func TestParseBuildMarker_Invalid(t *testing.T) {
	for _, raw := range []string{"", "a", "a1", "-1"} {
		if _, ok := ParseBuildMarker(raw); ok {
			t.Errorf("ParseBuildMarker(%q) should fail", raw)
		}
	}
}

func TestBuildMarker_Compare(t *testing.T) {
	parse := func(raw string) BuildMarker {
		t.Helper()
		b, ok := ParseBuildMarker(raw)
		if !ok {
			t.Fatalf("ParseBuildMarker(%q) failed", raw)
		}
		return b
	}

	// Ordinals compare numerically, not lexicographically.
	if parse("2").Compare(parse("10")) >= 0 {
		t.Error("expected 2 < 10")
	}
	// Suffixes break ordinal ties lexicographically.
	if parse("1a").Compare(parse("1b")) >= 0 {
		t.Error("expected 1a < 1b")
	}
	if parse("3").Compare(parse("3")) != 0 {
		t.Error("expected 3 == 3")
	}
	// The zero value is the minimum.
	if (BuildMarker{}).Compare(parse("0a")) >= 0 {
		t.Error("expected {0,\"\"} < 0a")
	}
}
