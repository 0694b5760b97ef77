package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/cvrender/pkg/runner"
)

// layout creates a data file and a templates directory under a temp root.
type layout struct {
	root      string
	data      string
	templates string
	outDir    string
}

func newLayout(t *testing.T, templates ...string) layout {
	t.Helper()

	root := t.TempDir()
	l := layout{
		root:      root,
		data:      filepath.Join(root, "resume.yml"),
		templates: filepath.Join(root, "templates"),
		outDir:    filepath.Join(root, "out"),
	}

	writeFile(t, l.data, "personal: {}\n")
	for _, dir := range []string{l.templates, l.outDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	for _, name := range templates {
		writeFile(t, filepath.Join(l.templates, name), "{{ .Context.TemplateName }}")
	}

	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func (l layout) tmpl(name string) string {
	return filepath.Join(l.templates, name)
}

func TestBuildPlan_SingleTemplateToStdout(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.tex.j2")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:  l.data,
		Templates: []string{l.tmpl("cv.tex.j2")},
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(plan.Jobs) != 1 || !plan.Jobs[0].ToStdout() {
		t.Fatalf("expected a single stdout job, got %#v", plan.Jobs)
	}
	if plan.TemplatesDir != l.templates {
		t.Errorf("TemplatesDir = %q, want %q", plan.TemplatesDir, l.templates)
	}
}

func TestBuildPlan_SingleTemplateIntoDirectory(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.tex.j2")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:  l.data,
		Templates: []string{l.tmpl("cv.tex.j2")},
		Output:    l.outDir,
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	want := filepath.Join(l.outDir, "cv.tex")
	if plan.Jobs[0].Output != want {
		t.Errorf("Output = %q, want %q", plan.Jobs[0].Output, want)
	}
}

func TestBuildPlan_SingleTemplateToNewFile(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.html.tmpl")
	out := filepath.Join(l.root, "build", "site", "index.html")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:  l.data,
		Templates: []string{l.tmpl("cv.html.tmpl")},
		Output:    out,
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if plan.Jobs[0].Output != out {
		t.Errorf("Output = %q, want %q", plan.Jobs[0].Output, out)
	}
}

func TestBuildPlan_RelativePaths(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.tex.j2")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:   "resume.yml",
		Templates:  []string{filepath.Join("templates", "cv.tex.j2")},
		Output:     "out",
		WorkingDir: l.root,
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if plan.DataPath != l.data {
		t.Errorf("DataPath = %q, want %q", plan.DataPath, l.data)
	}
	if plan.Jobs[0].Output != filepath.Join(l.outDir, "cv.tex") {
		t.Errorf("Output = %q", plan.Jobs[0].Output)
	}
}

func TestBuildPlan_MultipleTemplates(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.tex.j2", "cv.html.j2")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:  l.data,
		Templates: []string{l.tmpl("cv.tex.j2"), l.tmpl("cv.html.j2")},
		Output:    l.outDir,
		Jobs:      2,
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	wantOutputs := []string{filepath.Join(l.outDir, "cv.tex"), filepath.Join(l.outDir, "cv.html")}
	for idx, job := range plan.Jobs {
		if job.Output != wantOutputs[idx] {
			t.Errorf("Jobs[%d].Output = %q, want %q", idx, job.Output, wantOutputs[idx])
		}
	}
	if plan.Workers != 2 {
		t.Errorf("Workers = %d, want 2", plan.Workers)
	}
	if got := plan.Inputs(); len(got) != 3 || got[0] != l.data {
		t.Errorf("Inputs() = %v", got)
	}
}

func TestBuildPlan_DiscoversTemplates(t *testing.T) {
	t.Parallel()

	l := newLayout(t, "cv.tex.j2", "cv.html.j2")
	writeFile(t, filepath.Join(l.templates, "notes.md"), "not a template")

	plan, err := runner.BuildPlan(context.Background(), runner.Options{
		DataPath:     l.data,
		TemplatesDir: l.templates,
		Output:       l.outDir,
	}, nil)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(plan.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(plan.Jobs))
	}
	if filepath.Base(plan.Jobs[0].Template) != "cv.html.j2" {
		t.Errorf("expected sorted templates, got %q first", plan.Jobs[0].Template)
	}
}

func TestBuildPlan_ExistingOutput(t *testing.T) {
	t.Parallel()

	t.Run("rejected without force", func(t *testing.T) {
		t.Parallel()

		l := newLayout(t, "cv.tex.j2")
		writeFile(t, filepath.Join(l.outDir, "cv.tex"), "old")

		_, err := runner.BuildPlan(context.Background(), runner.Options{
			DataPath:  l.data,
			Templates: []string{l.tmpl("cv.tex.j2")},
			Output:    l.outDir,
		}, nil)
		if !errors.Is(err, runner.ErrInvalidPlan) || !strings.Contains(err.Error(), "--force") {
			t.Errorf("error = %v, want --force hint", err)
		}
	})

	t.Run("accepted with force", func(t *testing.T) {
		t.Parallel()

		l := newLayout(t, "cv.tex.j2")
		writeFile(t, filepath.Join(l.outDir, "cv.tex"), "old")

		_, err := runner.BuildPlan(context.Background(), runner.Options{
			DataPath:  l.data,
			Templates: []string{l.tmpl("cv.tex.j2")},
			Output:    l.outDir,
			Force:     true,
		}, nil)
		if err != nil {
			t.Errorf("BuildPlan() error = %v", err)
		}
	})

	t.Run("directory is never overwritten", func(t *testing.T) {
		t.Parallel()

		l := newLayout(t, "cv.tex.j2", "cv.html.j2")
		if err := os.MkdirAll(filepath.Join(l.outDir, "cv.tex"), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := runner.BuildPlan(context.Background(), runner.Options{
			DataPath:  l.data,
			Templates: []string{l.tmpl("cv.tex.j2"), l.tmpl("cv.html.j2")},
			Output:    l.outDir,
			Force:     true,
		}, nil)
		if !errors.Is(err, runner.ErrInvalidPlan) || !strings.Contains(err.Error(), "not a file") {
			t.Errorf("error = %v, want not a file", err)
		}
	})
}

func TestBuildPlan_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    func(l layout) runner.Options
		wantMsg string
	}{
		{
			name: "missing data file",
			opts: func(l layout) runner.Options {
				return runner.Options{DataPath: filepath.Join(l.root, "missing.yml"), Templates: []string{l.tmpl("cv.tex.j2")}}
			},
			wantMsg: "not found",
		},
		{
			name:    "no data file",
			opts:    func(l layout) runner.Options { return runner.Options{Templates: []string{l.tmpl("cv.tex.j2")}} },
			wantMsg: "data file is required",
		},
		{
			name:    "missing template",
			opts:    func(l layout) runner.Options { return runner.Options{DataPath: l.data, Templates: []string{l.tmpl("nope.j2")}} },
			wantMsg: "not found",
		},
		{
			name:    "no templates",
			opts:    func(l layout) runner.Options { return runner.Options{DataPath: l.data} },
			wantMsg: "at least one input template",
		},
		{
			name: "multiple templates without output",
			opts: func(l layout) runner.Options {
				return runner.Options{DataPath: l.data, Templates: []string{l.tmpl("cv.tex.j2"), l.tmpl("cv.html.j2")}}
			},
			wantMsg: "output path must be provided",
		},
		{
			name: "multiple templates into a file",
			opts: func(l layout) runner.Options {
				return runner.Options{
					DataPath:  l.data,
					Templates: []string{l.tmpl("cv.tex.j2"), l.tmpl("cv.html.j2")},
					Output:    filepath.Join(l.root, "blocker"),
				}
			},
			wantMsg: "must be a directory",
		},
		{
			name: "duplicate template",
			opts: func(l layout) runner.Options {
				return runner.Options{
					DataPath:  l.data,
					Templates: []string{l.tmpl("cv.tex.j2"), l.tmpl("cv.tex.j2")},
					Output:    l.outDir,
				}
			},
			wantMsg: "used multiple times",
		},
		{
			name: "data file used as template",
			opts: func(l layout) runner.Options {
				return runner.Options{DataPath: l.data, Templates: []string{l.data}, Output: l.outDir}
			},
			wantMsg: "used multiple times",
		},
		{
			name: "output overwrites data file",
			opts: func(l layout) runner.Options {
				return runner.Options{DataPath: l.data, Templates: []string{l.tmpl("cv.tex.j2")}, Output: l.data, Force: true}
			},
			wantMsg: "also used as an input",
		},
		{
			name: "output into templates directory",
			opts: func(l layout) runner.Options {
				return runner.Options{DataPath: l.data, Templates: []string{l.tmpl("cv.tex.j2")}, Output: l.templates}
			},
			wantMsg: "templates directory",
		},
		{
			name: "templates in different directories",
			opts: func(l layout) runner.Options {
				return runner.Options{
					DataPath:  l.data,
					Templates: []string{l.tmpl("cv.tex.j2"), filepath.Join(l.root, "other", "cv.html.j2")},
					Output:    l.outDir,
				}
			},
			wantMsg: "not in the templates directory",
		},
		{
			name: "output below a file",
			opts: func(l layout) runner.Options {
				return runner.Options{
					DataPath:  l.data,
					Templates: []string{l.tmpl("cv.tex.j2")},
					Output:    filepath.Join(l.root, "blocker", "cv.tex"),
				}
			},
			wantMsg: "is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := newLayout(t, "cv.tex.j2", "cv.html.j2")
			writeFile(t, filepath.Join(l.root, "other", "cv.html.j2"), "x")
			writeFile(t, filepath.Join(l.root, "blocker"), "x")

			_, err := runner.BuildPlan(context.Background(), tt.opts(l), nil)
			if !errors.Is(err, runner.ErrInvalidPlan) {
				t.Fatalf("error = %v, want ErrInvalidPlan", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}
