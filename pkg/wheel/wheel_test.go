package wheel

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		filename string
		dist     string
		version  string
		build    string // "" means no build segment
		tag      string
	}{
		{"requests-2.31.0-py3-none-any.whl", "requests", "2.31.0", "", "py3-none-any"},
		{"six-1.16.0-py2.py3-none-any.whl", "six", "1.16.0", "", "py2.py3-none-any"},
		{"numpy-1.26.4-cp312-cp312-manylinux_2_17_x86_64.whl", "numpy", "1.26.4", "", "cp312-cp312-manylinux_2_17_x86_64"},
		{"pkg-1.0-1-py3-none-any.whl", "pkg", "1.0", "1", "py3-none-any"},
		{"pkg-1.0-2build1-py3-none-any.whl", "pkg", "1.0", "2build1", "py3-none-any"},
		{"my_dist-0.1.0-py3-none-win_amd64.whl", "my_dist", "0.1.0", "", "py3-none-win_amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, err := ParseName(tt.filename)
			if err != nil {
				t.Fatalf("ParseName(%q) failed: %v", tt.filename, err)
			}
			if name.Distribution != tt.dist {
				t.Errorf("Distribution: expected %q, got %q", tt.dist, name.Distribution)
			}
			if got := name.Version.Original(); got != tt.version {
				t.Errorf("Version: expected %q, got %q", tt.version, got)
			}
			switch {
			case tt.build == "" && name.Build != nil:
				t.Errorf("expected no build marker, got %v", name.Build)
			case tt.build != "" && name.Build == nil:
				t.Errorf("expected build marker %q, got none", tt.build)
			case tt.build != "" && name.Build.String() != tt.build:
				t.Errorf("Build: expected %q, got %q", tt.build, name.Build)
			}
			if got := name.Tag.String(); got != tt.tag {
				t.Errorf("Tag: expected %q, got %q", tt.tag, got)
			}
		})
	}
}

func TestParseName_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"not a wheel at all", "not-a-wheel"},
		{"wrong extension", "pkg-1.0-py3-none-any.tar.gz"},
		{"too few segments", "pkg-py3-none-any.whl"},
		{"missing tag segment", "pkg-1.0-py3-none.whl"},
		{"empty name segment", "-py3-none-any.whl"},
		{"bad version", "pkg-notaversion-py3-none-any.whl"},
		{"bad build marker", "pkg-1.0-beta-py3-none-any.whl"},
		{"invalid tag invariant", "pkg-1.0-cp312-cp312-any.whl"},
		{"too many head tokens", "pkg-1.0-1-2-py3-none-any.whl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseName(tt.filename); !errors.Is(err, ErrInvalidWheelName) {
				t.Errorf("ParseName(%q): expected ErrInvalidWheelName, got %v", tt.filename, err)
			}
		})
	}
}

func TestName_RoundTrip(t *testing.T) {
	// Display must reproduce the original filename, including the
	// presence or absence of the build segment.
	for _, filename := range []string{
		"requests-2.31.0-py3-none-any.whl",
		"six-1.16.0-py2.py3-none-any.whl",
		"pkg-1.0-1-py3-none-any.whl",
		"pkg-1.0-2build1-cp312-cp312-manylinux_2_17_x86_64.whl",
	} {
		name, err := ParseName(filename)
		if err != nil {
			t.Fatalf("ParseName(%q) failed: %v", filename, err)
		}
		if got := name.String(); got != filename {
			t.Errorf("round trip: expected %q, got %q", filename, got)
		}
	}
}
