package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pipspect/pipspect/pkg/warehouse"
)

func TestDetailLevel(t *testing.T) {
	tests := []struct {
		name           string
		quiet, verbose int
		want           int
	}{
		{"defaults", 0, 0, 2},
		{"quiet once", 1, 0, 1},
		{"quiet twice", 2, 0, 0},
		{"quiet three times", 3, 0, 0},
		{"quiet beats verbose", 2, 5, 0},
		{"verbose once", 0, 1, 3},
		{"verbose five times", 0, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detailLevel(tt.quiet, tt.verbose); got != tt.want {
				t.Errorf("detailLevel(%d, %d) = %d, want %d", tt.quiet, tt.verbose, got, tt.want)
			}
		})
	}
}

func renderFixture() *warehouse.Release {
	return &warehouse.Release{
		Info: warehouse.Info{
			Name:           "demo",
			Version:        "1.2.3",
			Summary:        "A demonstration package",
			License:        "MIT",
			AuthorEmail:    `"Jane Doe" <jane@example.test>`,
			Keywords:       "packaging,wheels",
			Classifiers:    []string{"Programming Language :: Python :: 3"},
			RequiresPython: ">=3.9",
			RequiresDist:   []string{"requests>=2.0"},
			ProjectURL:     "https://pypi.org/project/demo/",
			Description:    "The readme body.",
		},
		URLs: []warehouse.DistributionURL{
			{Filename: "demo-1.2.3.tar.gz", PackageType: "sdist", URL: "https://example.test/sdist"},
			{Filename: "demo-1.2.3-py2.py3-none-any.whl", PackageType: "bdist_wheel", URL: "https://example.test/wheel"},
		},
	}
}

func TestRenderRelease_Levels(t *testing.T) {
	release := renderFixture()

	// Level 0 with nothing forced renders nothing.
	if out := renderRelease(release, nil, nil, detailFlags{level: 0}); out != "" {
		t.Errorf("level 0 should render nothing, got %q", out)
	}

	// Default level shows title and summary but not license or urls.
	out := renderRelease(release, nil, nil, detailFlags{level: 2})
	if !strings.Contains(out, "demo@1.2.3") {
		t.Errorf("expected title, got %q", out)
	}
	if !strings.Contains(out, "A demonstration package") {
		t.Errorf("expected summary, got %q", out)
	}
	if strings.Contains(out, "MIT") || strings.Contains(out, "pypi.org") {
		t.Errorf("level 2 should not show license or urls, got %q", out)
	}

	// Level 3 adds license (with the quotes stripped from the email) and urls.
	out = renderRelease(release, nil, nil, detailFlags{level: 3})
	if !strings.Contains(out, "MIT © Jane Doe <jane@example.test>") {
		t.Errorf("expected license line, got %q", out)
	}
	if !strings.Contains(out, "https://pypi.org/project/demo/") {
		t.Errorf("expected project url, got %q", out)
	}

	// Level 7 includes everything up to the readme.
	out = renderRelease(release, nil, nil, detailFlags{level: 7})
	for _, want := range []string{
		"packaging, wheels",
		"Programming Language :: Python :: 3",
		"sdist and universal wheel",
		"python>=3.9",
		"requests>=2.0",
		"The readme body.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("level 7 missing %q in %q", want, out)
		}
	}
}

func TestRenderRelease_ForcedSections(t *testing.T) {
	release := renderFixture()

	// A forced section shows even at level 0.
	out := renderRelease(release, nil, nil, detailFlags{level: 0, license: true})
	if !strings.Contains(out, "MIT") {
		t.Errorf("forced license should render, got %q", out)
	}
	if strings.Contains(out, "demo@1.2.3") {
		t.Errorf("title should stay hidden at level 0, got %q", out)
	}

	// Repeating --artifacts expands the summary into per-artifact lines.
	out = renderRelease(release, nil, nil, detailFlags{level: 0, artifacts: 2})
	if !strings.Contains(out, "py2.py3-none-any") || !strings.Contains(out, "sdist") {
		t.Errorf("expected per-artifact lines, got %q", out)
	}
	if strings.Contains(out, "https://example.test/wheel") {
		t.Errorf("urls need a third --artifacts, got %q", out)
	}
	out = renderRelease(release, nil, nil, detailFlags{level: 0, artifacts: 3})
	if !strings.Contains(out, "https://example.test/wheel") {
		t.Errorf("expected artifact urls, got %q", out)
	}
}

func TestRenderRelease_ScopedDistribution(t *testing.T) {
	release := renderFixture()
	out := renderRelease(release, &release.URLs[0], nil, detailFlags{level: 0, artifacts: 1})
	if !strings.Contains(out, "sdist") {
		t.Errorf("expected scoped sdist line, got %q", out)
	}
	if strings.Contains(out, "py2.py3-none-any") {
		t.Errorf("scoped artifact detail should exclude other artifacts, got %q", out)
	}
}

func TestRenderRelease_Yanked(t *testing.T) {
	release := renderFixture()
	release.Info.Yanked = true
	out := renderRelease(release, nil, nil, detailFlags{level: 1})
	if !strings.Contains(out, "demo@1.2.3 [YANKED]") {
		t.Errorf("expected yanked marker, got %q", out)
	}
}

func TestSummarizeArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		files []warehouse.DistributionURL
		want  string
	}{
		{
			"sdist only",
			[]warehouse.DistributionURL{{Filename: "a-1.0.tar.gz", PackageType: "sdist"}},
			"sdist",
		},
		{
			"universal",
			[]warehouse.DistributionURL{{Filename: "a-1.0-py2.py3-none-any.whl", PackageType: "bdist_wheel"}},
			"universal wheel",
		},
		{
			"pure single",
			[]warehouse.DistributionURL{{Filename: "a-1.0-py3-none-any.whl", PackageType: "bdist_wheel"}},
			"pure wheel",
		},
		{
			"platform plural",
			[]warehouse.DistributionURL{
				{Filename: "a-1.0-cp312-cp312-manylinux_2_17_x86_64.whl", PackageType: "bdist_wheel"},
				{Filename: "a-1.0-cp312-cp312-win_amd64.whl", PackageType: "bdist_wheel"},
			},
			"platform-specific wheels",
		},
		{
			"mixed",
			[]warehouse.DistributionURL{
				{Filename: "a-1.0.tar.gz", PackageType: "sdist"},
				{Filename: "a-1.0-py2.py3-none-any.whl", PackageType: "bdist_wheel"},
				{Filename: "a-1.0-cp312-cp312-win_amd64.whl", PackageType: "bdist_wheel"},
			},
			"sdist and universal wheel and platform-specific wheel",
		},
		{
			"nothing distributable",
			[]warehouse.DistributionURL{{Filename: "a-1.0.egg", PackageType: "bdist_egg"}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summarizeArtifacts(tt.files); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b, c", []string{"a", "b", "c"}},
		{"a b c", []string{"a", "b", "c"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		got := splitKeywords(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitKeywords(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRenderVersions(t *testing.T) {
	project := &warehouse.Project{
		Info: warehouse.Info{Name: "demo"},
		Releases: map[string]json.RawMessage{
			"1.0.0": nil,
			"2.0.0": nil,
		},
	}
	out := renderVersions(project, 1)
	if !strings.Contains(out, "demo") {
		t.Errorf("expected name header, got %q", out)
	}
	if !strings.Contains(out, "2.0.0, 1.0.0") {
		t.Errorf("expected newest-first order, got %q", out)
	}

	out = renderVersions(project, 0)
	if strings.Contains(out, "demo") {
		t.Errorf("header should hide at level 0, got %q", out)
	}
}
