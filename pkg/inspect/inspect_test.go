package inspect

import (
	"archive/zip"
	"bytes"
	"errors"
	"slices"
	"testing"
)

const testMetadata = `Metadata-Version: 2.1
Name: demo
Version: 1.0.0
Summary: A demonstration package

The long description goes here.
`

const testRecord = `demo/__init__.py,sha256=47DEQpj8HBSa-_TImW-5JA,0
demo/core.py,sha256=aGVsbG8,512
single_module.py,sha256=d29ybGQ,128
demo-1.0.0.data/scripts/demo-cli,sha256=c2NyaXB0,64
demo-1.0.0.dist-info/METADATA,sha256=bWV0YQ,200
demo-1.0.0.dist-info/RECORD,,
`

const testEntryPoints = `[console_scripts]
demo = demo.cli:main
demo-admin = demo.admin:main [extra]

[demo.plugins]
default = demo.plugins.default
`

func buildWheel(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testWheel(t *testing.T) []byte {
	t.Helper()
	return buildWheel(t, map[string]string{
		"demo/__init__.py":                      "",
		"demo/core.py":                          "def run(): pass\n",
		"single_module.py":                      "",
		"demo-1.0.0.data/scripts/demo-cli":      "#!python\n",
		"demo-1.0.0.dist-info/METADATA":         testMetadata,
		"demo-1.0.0.dist-info/RECORD":           testRecord,
		"demo-1.0.0.dist-info/entry_points.txt": testEntryPoints,
	})
}

func TestParse(t *testing.T) {
	pkg, err := Parse(testWheel(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if pkg.Metadata.Name != "demo" || pkg.Metadata.Version != "1.0.0" {
		t.Errorf("unexpected metadata: %+v", pkg.Metadata)
	}
	if pkg.Metadata.MetadataVersion != "2.1" {
		t.Errorf("unexpected metadata version: %q", pkg.Metadata.MetadataVersion)
	}

	// The RECORD row for RECORD itself has no digest and is skipped.
	if len(pkg.Record) != 5 {
		t.Fatalf("expected 5 record entries, got %d", len(pkg.Record))
	}
	first := pkg.Record[0]
	if first.Path != "demo/__init__.py" || first.Algo != "sha256" || first.Size != 0 {
		t.Errorf("unexpected first record entry: %+v", first)
	}
}

func TestParse_MissingFiles(t *testing.T) {
	noRecord := buildWheel(t, map[string]string{
		"demo-1.0.0.dist-info/METADATA": testMetadata,
	})
	if _, err := Parse(noRecord); !errors.Is(err, ErrNoRecord) {
		t.Errorf("expected ErrNoRecord, got %v", err)
	}

	noMetadata := buildWheel(t, map[string]string{
		"demo-1.0.0.dist-info/RECORD": testRecord,
	})
	if _, err := Parse(noMetadata); !errors.Is(err, ErrNoMetadata) {
		t.Errorf("expected ErrNoMetadata, got %v", err)
	}

	if _, err := Parse([]byte("not a zip")); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestPackage_Packages(t *testing.T) {
	pkg, err := Parse(testWheel(t))
	if err != nil {
		t.Fatal(err)
	}
	// dist-info and .data entries are excluded; .py modules lose their
	// suffix; the package dir appears once.
	got := pkg.Packages()
	want := []string{"demo", "single_module"}
	if !slices.Equal(got, want) {
		t.Errorf("Packages: expected %v, got %v", want, got)
	}
}

func TestPackage_Executables(t *testing.T) {
	pkg, err := Parse(testWheel(t))
	if err != nil {
		t.Fatal(err)
	}
	got := pkg.Executables()
	if !slices.Equal(got, []string{"demo-cli"}) {
		t.Errorf("Executables: got %v", got)
	}
}

func TestPackage_ConsoleScripts(t *testing.T) {
	pkg, err := Parse(testWheel(t))
	if err != nil {
		t.Fatal(err)
	}
	got := pkg.ConsoleScripts()
	if !slices.Equal(got, []string{"demo", "demo-admin"}) {
		t.Errorf("ConsoleScripts: got %v", got)
	}

	// Entry point targets keep their structure.
	ref := pkg.EntryPoints["console_scripts"]["demo-admin"]
	if ref.Module != "demo.admin" || ref.Object != "main" || ref.Extras != "extra" {
		t.Errorf("unexpected reference: %+v", ref)
	}
	plain := pkg.EntryPoints["demo.plugins"]["default"]
	if plain.Module != "demo.plugins.default" || plain.Object != "" {
		t.Errorf("unexpected plain reference: %+v", plain)
	}
}
