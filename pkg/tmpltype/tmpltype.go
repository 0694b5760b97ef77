// Package tmpltype detects the output format of a template from its file name.
package tmpltype

import (
	"path/filepath"
	"strings"
)

// Type is the output format a template produces.
type Type string

// Template types. Unknown is returned when no suffix matches.
const (
	Unknown Type = ""
	HTML    Type = "html"
	TeX     Type = "latex"
)

// suffixTable lists suffixes per type in match priority order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var suffixTable = []struct {
	suffixes []string
	typ      Type
}{
	{suffixes: []string{".html"}, typ: HTML},
	{suffixes: []string{".tex", ".latex"}, typ: TeX},
}

// Detect returns the template type of path.
//
// Every suffix of the base name is considered, case-insensitively, so
// "cv.tex.j2" is TeX. HTML wins when a name carries suffixes of both types.
// Leading dots belong to the name, not to a suffix: ".html" is Unknown.
func Detect(path string) Type {
	suffixes := Suffixes(filepath.Base(path))
	for _, entry := range suffixTable {
		if matchSuffixes(suffixes, entry.suffixes) {
			return entry.typ
		}
	}

	return Unknown
}

// Suffixes returns the lower-cased dotted suffixes of a file name, in order.
// Suffixes("cv.HTML.j2") is [".html", ".j2"].
func Suffixes(name string) []string {
	if name == "" || strings.HasSuffix(name, ".") {
		return nil
	}

	parts := strings.Split(strings.TrimLeft(name, "."), ".")
	if len(parts) < 2 {
		return nil
	}

	suffixes := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		suffixes = append(suffixes, "."+strings.ToLower(part))
	}
	return suffixes
}

func matchSuffixes(suffixes, targets []string) bool {
	for _, target := range targets {
		for _, suffix := range suffixes {
			if suffix == target {
				return true
			}
		}
	}
	return false
}

// String returns the type name, or "unknown".
func (t Type) String() string {
	if t == Unknown {
		return "unknown"
	}
	return string(t)
}

// Known reports whether t is a supported template type.
func (t Type) Known() bool {
	return t == HTML || t == TeX
}
