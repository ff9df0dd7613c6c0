package warehouse

import (
	"encoding/json"
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/pipspect/pipspect/pkg/wheel"
)

// Artifact type identifiers used by the packagetype field.
const (
	packageTypeSdist = "sdist"
	packageTypeWheel = "bdist_wheel"
)

// Info holds the metadata block shared by the project and release
// endpoints. Optional fields are empty strings when absent; project_urls
// and requires_dist may be nil.
type Info struct {
	Author                 string            `json:"author"`
	AuthorEmail            string            `json:"author_email"`
	Classifiers            []string          `json:"classifiers"`
	Description            string            `json:"description"`
	DescriptionContentType string            `json:"description_content_type"`
	DocsURL                string            `json:"docs_url"`
	DownloadURL            string            `json:"download_url"`
	HomePage               string            `json:"home_page"`
	Keywords               string            `json:"keywords"`
	License                string            `json:"license"`
	Maintainer             string            `json:"maintainer"`
	MaintainerEmail        string            `json:"maintainer_email"`
	Name                   string            `json:"name"`
	PackageURL             string            `json:"package_url"`
	Platform               string            `json:"platform"`
	ProjectURL             string            `json:"project_url"`
	ProjectURLs            map[string]string `json:"project_urls"`
	RequiresDist           []string          `json:"requires_dist"`
	RequiresPython         string            `json:"requires_python"`
	Summary                string            `json:"summary"`
	Version                string            `json:"version"`
	Yanked                 bool              `json:"yanked"`
	YankedReason           string            `json:"yanked_reason"`
}

// Project is the response of /pypi/{project}/json. The releases payload
// is kept raw; only the version keys are used.
type Project struct {
	Info     Info                       `json:"info"`
	Releases map[string]json.RawMessage `json:"releases"`
}

// Versions returns the raw version strings known for this project.
// They may or may not be valid versions; order is unspecified.
func (p *Project) Versions() []string {
	versions := make([]string, 0, len(p.Releases))
	for v := range p.Releases {
		versions = append(versions, v)
	}
	return versions
}

// OrderedVersions returns the validated versions in comparison order,
// oldest first. Versions that don't parse are dropped.
//
// Note that the order is not necessarily the same order as creation time
// and is also probably not in lexical order.
func (p *Project) OrderedVersions() []*goversion.Version {
	ordered := make([]*goversion.Version, 0, len(p.Releases))
	for raw := range p.Releases {
		if v, err := goversion.NewVersion(raw); err == nil {
			ordered = append(ordered, v)
		}
	}
	sort.Sort(goversion.Collection(ordered))
	return ordered
}

// Release is the response of /pypi/{project}/{version}/json.
type Release struct {
	Info            Info              `json:"info"`
	URLs            []DistributionURL `json:"urls"`
	Vulnerabilities []Vulnerability   `json:"vulnerabilities"`
}

// Version returns the validated version of this release.
func (r *Release) Version() (*goversion.Version, error) {
	v, err := goversion.NewVersion(r.Info.Version)
	if err != nil {
		return nil, ErrInvalidVersion
	}
	return v, nil
}

// Records converts the artifact listing into selection records.
// The returned slice is index-aligned with r.URLs.
func (r *Release) Records() []wheel.Record {
	records := make([]wheel.Record, len(r.URLs))
	for i, u := range r.URLs {
		records[i] = u.Record()
	}
	return records
}

// DistributionURL describes one downloadable artifact of a release.
type DistributionURL struct {
	Digests        Digests `json:"digests"`
	Filename       string  `json:"filename"`
	MD5Digest      string  `json:"md5_digest"`
	PackageType    string  `json:"packagetype"`
	PythonVersion  string  `json:"python_version"`
	RequiresPython string  `json:"requires_python"`
	Size           int     `json:"size"`
	UploadTime     string  `json:"upload_time"`
	UploadTimeISO  string  `json:"upload_time_iso_8601"`
	URL            string  `json:"url"`
	Yanked         bool    `json:"yanked"`
	YankedReason   string  `json:"yanked_reason"`
}

// WheelName parses the artifact filename as a wheel name.
// Fails for sdists and other non-wheel artifacts.
func (u *DistributionURL) WheelName() (*wheel.Name, error) {
	return wheel.ParseName(u.Filename)
}

// Record converts the artifact into a selection record.
func (u *DistributionURL) Record() wheel.Record {
	kind := wheel.KindOther
	switch u.PackageType {
	case packageTypeSdist:
		kind = wheel.KindSource
	case packageTypeWheel:
		kind = wheel.KindWheel
	}
	return wheel.Record{
		Filename:   u.Filename,
		Kind:       kind,
		URL:        u.URL,
		UploadTime: u.UploadTimeISO,
	}
}

// Digests holds the artifact checksums published by the index.
type Digests struct {
	Blake2b256 string `json:"blake2b_256"`
	MD5        string `json:"md5"`
	SHA256     string `json:"sha256"`
}

// Vulnerability is a security advisory attached to a release.
type Vulnerability struct {
	ID        string   `json:"id"`
	Source    string   `json:"source"`
	Link      string   `json:"link"`
	Aliases   []string `json:"aliases"`
	Details   string   `json:"details"`
	Summary   string   `json:"summary"`
	FixedIn   []string `json:"fixed_in"`
	Withdrawn string   `json:"withdrawn"`
}
