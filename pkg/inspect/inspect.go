// Package inspect looks inside built wheels.
//
// A wheel is a zip archive with a {name}-{version}.dist-info directory
// holding installation metadata. This package reads the three files that
// matter for identification:
//
//	RECORD            installed-files manifest (PEP 376 CSV)
//	METADATA          core metadata (RFC 822 style headers)
//	entry_points.txt  entry point groups (INI format)
//
// and answers what a wheel provides: importable top-level names, data
// scripts, and console_scripts entry points.
package inspect

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/pipspect/pipspect/pkg/warehouse"
)

// Sentinel errors for malformed wheels.
var (
	// ErrNoRecord is returned when a wheel has no RECORD file.
	ErrNoRecord = errors.New("no RECORD file found in distribution")

	// ErrNoMetadata is returned when a wheel has no METADATA file.
	ErrNoMetadata = errors.New("no METADATA file found in distribution")
)

// RecordEntry is one row of the RECORD manifest.
type RecordEntry struct {
	Path string // Archive path of the installed file
	Algo string // Digest algorithm (usually "sha256")
	Hash string // Base64 urlsafe digest
	Size int    // File size in bytes
}

// Metadata holds the required core metadata headers.
// Only what is needed for identification is kept.
type Metadata struct {
	MetadataVersion string
	Name            string
	Version         string
}

// ObjectReference is the target of an entry point:
// module[:object] with optional [extras].
type ObjectReference struct {
	Module string
	Object string // empty when the reference names a bare module
	Extras string // empty when no extras are required
}

// Package is the inspected content of one wheel.
type Package struct {
	Metadata    Metadata
	Record      []RecordEntry
	EntryPoints map[string]map[string]ObjectReference // group -> name -> target
}

// Fetch downloads a wheel through the client and inspects it.
func Fetch(ctx context.Context, c *warehouse.Client, url string) (*Package, error) {
	data, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse inspects wheel bytes.
func Parse(data []byte) (*Package, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a wheel archive: %w", err)
	}

	pkg := &Package{}
	var haveRecord, haveMetadata bool
	for _, f := range archive.File {
		name, ok := distFilename(f.Name)
		if !ok {
			continue
		}
		switch name {
		case "RECORD":
			if err := readInto(f, func(content []byte) error {
				pkg.Record = parseRecord(content)
				return nil
			}); err != nil {
				return nil, err
			}
			haveRecord = true
		case "METADATA":
			if err := readInto(f, func(content []byte) error {
				metadata, err := parseMetadata(content)
				if err != nil {
					return err
				}
				pkg.Metadata = metadata
				return nil
			}); err != nil {
				return nil, err
			}
			haveMetadata = true
		case "entry_points.txt":
			if err := readInto(f, func(content []byte) error {
				entryPoints, err := parseEntryPoints(content)
				if err != nil {
					return err
				}
				pkg.EntryPoints = entryPoints
				return nil
			}); err != nil {
				return nil, err
			}
		}
	}

	if !haveRecord {
		return nil, ErrNoRecord
	}
	if !haveMetadata {
		return nil, ErrNoMetadata
	}
	return pkg, nil
}

func readInto(f *zip.File, parse func([]byte) error) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return parse(content)
}

// Packages returns all top-level import names this package provides,
// sorted. This could be package roots, top-level modules, or namespace
// packages.
func (p *Package) Packages() []string {
	seen := make(map[string]bool)
	for _, entry := range p.Record {
		if isDistDir(entry.Path) || isDataDir(entry.Path) {
			continue
		}
		top, _, _ := strings.Cut(entry.Path, "/")
		top = strings.TrimSuffix(top, ".py")
		if top != "" {
			seen[top] = true
		}
	}
	return sorted(seen)
}

// Executables returns all scripts installed under the wheel's data
// scripts directory, sorted.
func (p *Package) Executables() []string {
	seen := make(map[string]bool)
	for _, entry := range p.Record {
		name, ok := dataFilename(entry.Path)
		if !ok {
			continue
		}
		dir, file, found := strings.Cut(name, "/")
		if found && dir == "scripts" && file != "" {
			seen[file] = true
		}
	}
	return sorted(seen)
}

// ConsoleScripts returns the names from the special entry point group
// console_scripts, sorted.
func (p *Package) ConsoleScripts() []string {
	scripts := p.EntryPoints["console_scripts"]
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseRecord reads the PEP 376 manifest. Rows that don't carry a
// path, digest, and size are skipped, including the RECORD row itself.
func parseRecord(content []byte) []RecordEntry {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var entries []RecordEntry
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		if len(row) != 3 {
			continue
		}
		algo, hash, found := strings.Cut(row[1], "=")
		if !found {
			continue
		}
		size, err := strconv.Atoi(row[2])
		if err != nil {
			continue
		}
		entries = append(entries, RecordEntry{
			Path: row[0],
			Algo: algo,
			Hash: hash,
			Size: size,
		})
	}
	return entries
}

// parseMetadata reads the core metadata headers.
func parseMetadata(content []byte) (Metadata, error) {
	reader := textproto.NewReader(bufio.NewReader(bytes.NewReader(content)))
	header, err := reader.ReadMIMEHeader()
	// The body after the headers is the description; io.EOF just means
	// there is none.
	if err != nil && !errors.Is(err, io.EOF) {
		return Metadata{}, fmt.Errorf("invalid METADATA file: %w", err)
	}

	metadata := Metadata{
		MetadataVersion: header.Get("Metadata-Version"),
		Name:            header.Get("Name"),
		Version:         header.Get("Version"),
	}
	switch {
	case metadata.MetadataVersion == "":
		return Metadata{}, errors.New("METADATA file missing required Metadata-Version key")
	case metadata.Name == "":
		return Metadata{}, errors.New("METADATA file missing required Name key")
	case metadata.Version == "":
		return Metadata{}, errors.New("METADATA file missing required Version key")
	}
	return metadata, nil
}

// parseEntryPoints reads the INI-format entry point groups.
func parseEntryPoints(content []byte) (map[string]map[string]ObjectReference, error) {
	file, err := ini.Load(content)
	if err != nil {
		return nil, fmt.Errorf("invalid entry_points.txt: %w", err)
	}

	groups := make(map[string]map[string]ObjectReference)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		names := make(map[string]ObjectReference, len(section.Keys()))
		for _, key := range section.Keys() {
			names[key.Name()] = parseObjectReference(key.Value())
		}
		groups[section.Name()] = names
	}
	return groups, nil
}

// parseObjectReference splits "module:object [extras]" into its parts.
func parseObjectReference(raw string) ObjectReference {
	var ref ObjectReference
	target := raw
	if head, extras, found := cutLast(raw, '['); found {
		ref.Extras = strings.TrimSuffix(extras, "]")
		target = strings.TrimRight(head, " ")
	}
	ref.Module, ref.Object, _ = strings.Cut(target, ":")
	return ref
}

// cutLast splits around the last occurrence of sep.
func cutLast(s string, sep byte) (before, after string, found bool) {
	if i := strings.LastIndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func distFilename(entry string) (string, bool) {
	dir, name, found := strings.Cut(entry, "/")
	if !found || !strings.HasSuffix(dir, ".dist-info") {
		return "", false
	}
	return name, true
}

func dataFilename(entry string) (string, bool) {
	dir, name, found := strings.Cut(entry, "/")
	if !found || !strings.HasSuffix(dir, ".data") {
		return "", false
	}
	return name, true
}

func isDistDir(entry string) bool {
	dir, _, found := strings.Cut(entry, "/")
	return found && strings.HasSuffix(dir, ".dist-info")
}

func isDataDir(entry string) bool {
	dir, _, found := strings.Cut(entry, "/")
	return found && strings.HasSuffix(dir, ".data")
}

func sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
