package wheel

import (
	"errors"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My_Package.Name", "my-package-name"},
		{"Django", "django"},
		{"requests", "requests"},
		{"zope.interface", "zope-interface"},
		{"friendly-bard", "friendly-bard"},
		{"FrIeNdLy-._.-bArD", "friendly-bard"},
		{"a", "a"},
		{"0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeName(tt.input)
			if err != nil {
				t.Fatalf("NormalizeName(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeName_Invalid(t *testing.T) {
	for _, input := range []string{"", "-bad", "bad-", ".bad", "bad.", "_bad", "ba d", "b@d", "ümlaut"} {
		t.Run(input, func(t *testing.T) {
			if _, err := NormalizeName(input); !errors.Is(err, ErrInvalidName) {
				t.Errorf("NormalizeName(%q): expected ErrInvalidName, got %v", input, err)
			}
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	for _, input := range []string{"My_Package.Name", "flask", "A--B__C..D"} {
		once, err := NormalizeName(input)
		if err != nil {
			t.Fatalf("NormalizeName(%q) failed: %v", input, err)
		}
		twice, err := NormalizeName(once)
		if err != nil {
			t.Fatalf("NormalizeName(%q) failed: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}
