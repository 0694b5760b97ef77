// Package runner turns command line parameters into a render plan and
// executes it: one resume data file rendered through one or more templates.
package runner

// Options describes a render request before validation.
type Options struct {
	// DataPath is the resume YAML file.
	DataPath string

	// Templates are the template files to render. If empty, every template
	// found in TemplatesDir is used.
	Templates []string

	// TemplatesDir is searched when Templates is empty.
	TemplatesDir string

	// Output is the output file or directory. Empty means stdout, which is
	// only allowed for a single template.
	Output string

	// Force allows overwriting existing output files.
	Force bool

	// WorkingDir is the base directory used to resolve relative paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Jobs controls the maximum number of concurrent renders.
	// 0 or negative means "auto" (runtime.GOMAXPROCS).
	Jobs int
}

// TemplateSuffixes are stripped from a template name to form its output name.
func TemplateSuffixes() []string {
	return []string{".j2", ".tmpl"}
}
