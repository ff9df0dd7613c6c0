package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pipspect/pipspect/pkg/inspect"
	"github.com/pipspect/pipspect/pkg/warehouse"
)

const indent = "    "

// detailFlags selects which release sections to render. The level comes
// from the -v/-q ladder; the booleans force individual sections on
// regardless of level.
type detailFlags struct {
	level       int
	summary     bool
	license     bool
	urls        bool
	keywords    bool
	classifiers bool
	artifacts   int
	deps        bool
	readme      int
	packages    bool
	executables bool
}

// detailLevel computes the section threshold from the quiet and verbose
// counts. Quiet twice suppresses everything not explicitly forced.
func detailLevel(quiet, verbose int) int {
	switch {
	case quiet >= 2:
		return 0
	case quiet == 1:
		return 1
	default:
		return verbose + 2
	}
}

// renderRelease formats release details section by section. When dist is
// non-nil, artifact detail is scoped to that distribution. provides
// carries inspected wheel content for the packages/executables sections
// and may be nil.
func renderRelease(release *warehouse.Release, dist *warehouse.DistributionURL, provides *inspect.Package, flags detailFlags) string {
	var lines []string
	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	if flags.level >= 1 {
		add(renderTitle(release))
	}
	if flags.level >= 3 || flags.license {
		add(renderLicense(release))
	}
	if flags.level >= 2 || flags.summary {
		add(renderSummary(release))
	}
	if flags.level >= 3 || flags.urls {
		lines = append(lines, renderURLs(release)...)
	}
	if flags.level >= 4 || flags.keywords {
		add(renderKeywords(release))
	}
	if flags.level >= 4 || flags.classifiers {
		lines = append(lines, renderClassifiers(release)...)
	}
	if flags.level >= 5 || flags.artifacts >= 1 {
		if dist != nil {
			lines = append(lines, renderDistribution(dist, flags.artifacts)...)
		} else {
			lines = append(lines, renderDistributions(release, flags.artifacts)...)
		}
	}
	if flags.level >= 6 || flags.deps {
		lines = append(lines, renderDependencies(release)...)
	}
	if flags.packages && provides != nil {
		for _, p := range provides.Packages() {
			add(indent + StyleProvides.Render("■ "+p))
		}
	}
	if flags.executables && provides != nil {
		names := append(provides.Executables(), provides.ConsoleScripts()...)
		for _, e := range names {
			add(indent + StyleProvides.Render("▶ "+e))
		}
	}
	if flags.level >= 7 || flags.readme >= 1 {
		add(renderReadme(release))
	}

	return strings.Join(lines, "\n")
}

func renderTitle(release *warehouse.Release) string {
	title := fmt.Sprintf("%s@%s", release.Info.Name, release.Info.Version)
	if release.Info.Yanked {
		return indent + StyleYanked.Render(title+" [YANKED]")
	}
	return indent + StyleTitle.Render(title)
}

func renderSummary(release *warehouse.Release) string {
	if release.Info.Summary == "" {
		return ""
	}
	return indent + release.Info.Summary
}

func renderLicense(release *warehouse.Release) string {
	license := release.Info.License
	email := strings.ReplaceAll(release.Info.AuthorEmail, `"`, "")
	switch {
	case license != "" && email != "":
		return indent + StyleMeta.Render(license+" © "+email)
	case license != "":
		return indent + StyleMeta.Render(license)
	case email != "":
		return indent + StyleMeta.Render("© "+email)
	default:
		return ""
	}
}

// urlIcon matches the icons pypi.org shows for well-known URL labels.
func urlIcon(label string) string {
	switch strings.ToLower(label) {
	case "package index":
		return "📦"
	case "download":
		return "⇩"
	case "home", "homepage", "home page":
		return "🏠"
	case "changelog", "change log", "changes", "release notes", "news", "what's new", "history":
		return "📜"
	case "docs", "documentation":
		return "📄"
	case "bug", "issue", "tracker", "report":
		return "🐞"
	case "funding", "donate", "donation", "sponsor":
		return "💸"
	case "mastodon":
		return "🐘"
	default:
		return "🔗"
	}
}

func renderURLs(release *warehouse.Release) []string {
	var lines []string
	if release.Info.ProjectURL != "" {
		lines = append(lines, indent+urlIcon("package index")+" "+StyleLink.Render(release.Info.ProjectURL))
	}
	labels := make([]string, 0, len(release.Info.ProjectURLs))
	for label := range release.Info.ProjectURLs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		lines = append(lines, indent+urlIcon(label)+" "+StyleLink.Render(release.Info.ProjectURLs[label]))
	}
	return lines
}

// splitKeywords handles both comma- and space-separated keyword strings.
func splitKeywords(raw string) []string {
	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Fields(raw)
	}
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

func renderKeywords(release *warehouse.Release) string {
	keywords := splitKeywords(release.Info.Keywords)
	if len(keywords) == 0 {
		return ""
	}
	return indent + StyleKeyword.Bold(true).Render(strings.Join(keywords, ", "))
}

func renderClassifiers(release *warehouse.Release) []string {
	lines := make([]string, 0, len(release.Info.Classifiers))
	for _, c := range release.Info.Classifiers {
		lines = append(lines, indent+StyleKeyword.Render(c))
	}
	return lines
}

func renderDistribution(dist *warehouse.DistributionURL, detail int) []string {
	var label string
	switch dist.PackageType {
	case "sdist":
		label = "sdist"
	case "bdist_wheel":
		name, err := dist.WheelName()
		if err != nil {
			return nil
		}
		label = name.Tag.String()
	default:
		return nil
	}
	if detail > 2 {
		return []string{indent + StyleArtifact.Render(label) + " " + StyleLink.Render(dist.URL)}
	}
	return []string{indent + StyleArtifact.Render(label)}
}

func renderDistributions(release *warehouse.Release, detail int) []string {
	if detail >= 2 {
		var lines []string
		for i := range release.URLs {
			lines = append(lines, renderDistribution(&release.URLs[i], detail)...)
		}
		return lines
	}
	summary := summarizeArtifacts(release.URLs)
	if summary == "" {
		return nil
	}
	return []string{indent + StyleArtifact.Render(summary)}
}

// summarizeArtifacts condenses the artifact listing into one line, e.g.
// "sdist and universal wheel" or "sdist and platform-specific wheels".
func summarizeArtifacts(urls []warehouse.DistributionURL) string {
	var sdist, universal, pure, plat int
	for i := range urls {
		switch urls[i].PackageType {
		case "sdist":
			sdist++
		case "bdist_wheel":
			name, err := urls[i].WheelName()
			if err != nil {
				continue
			}
			switch {
			case name.Tag.IsUniversal():
				universal++
			case name.Tag.IsPure():
				pure++
			default:
				plat++
			}
		}
	}

	var parts []string
	if sdist > 0 {
		parts = append(parts, "sdist")
	}
	if universal > 0 {
		parts = append(parts, "universal wheel")
	}
	if pure > 1 {
		parts = append(parts, "pure wheels")
	} else if pure > 0 {
		parts = append(parts, "pure wheel")
	}
	if plat > 1 {
		parts = append(parts, "platform-specific wheels")
	} else if plat > 0 {
		parts = append(parts, "platform-specific wheel")
	}
	return strings.Join(parts, " and ")
}

func renderDependencies(release *warehouse.Release) []string {
	var lines []string
	if release.Info.RequiresPython != "" {
		lines = append(lines, indent+StyleDep.Render("python"+release.Info.RequiresPython))
	}
	for _, d := range release.Info.RequiresDist {
		lines = append(lines, indent+StyleDep.Render(d))
	}
	return lines
}

func renderReadme(release *warehouse.Release) string {
	if release.Info.Description == "" {
		return ""
	}
	return "\n" + release.Info.Description
}

// renderVersions lists a project's versions newest first. The name
// header drops away below detail level 1.
func renderVersions(project *warehouse.Project, level int) string {
	ordered := project.OrderedVersions()
	versions := make([]string, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		versions = append(versions, ordered[i].Original())
	}

	var b strings.Builder
	if level >= 1 {
		b.WriteString(indent + StyleTitle.Render(project.Info.Name) + "\n")
	}
	b.WriteString(strings.Join(versions, ", "))
	return b.String()
}
