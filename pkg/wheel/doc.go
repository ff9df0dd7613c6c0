// Package wheel implements the filename and compatibility-tag grammars of
// the Python packaging ecosystem: PEP 503 name normalization, PEP 425
// compatibility tags, PEP 427 wheel filenames, and the ranking algorithm
// that picks the best distribution among competing candidates.
//
// Everything in this package is a value type parsed from strings. Parsing
// never produces a partially valid value: a returned CompatibilityTag or
// Name satisfies all of its own invariants. All operations are pure and
// safe for concurrent use.
//
// # Grammar
//
// A wheel filename is
//
//	{distribution}-{version}[-{build}]-{python}-{abi}-{platform}.whl
//
// where python, abi and platform are dot-joined token sequences, abi may be
// the literal "none" (any ABI), platform may be the literal "any" (any
// platform), and build is a run of digits followed by arbitrary trailing
// characters. Version parsing and ordering is delegated to
// hashicorp/go-version.
package wheel
