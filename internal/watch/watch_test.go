package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

// recorder collects onChange batches.
type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, changed)
	return nil
}

func (r *recorder) seen() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, batch := range r.batches {
		for _, path := range batch {
			counts[path]++
		}
	}
	return counts
}

func startWatcher(t *testing.T, files []string, onChange ChangeFunc) (*Watcher, <-chan error) {
	t.Helper()

	w, err := New(files, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, onChange) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("Run() returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}

	return w, done
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNew_AbsolutePaths(t *testing.T) {
	t.Chdir(t.TempDir())

	w, err := New([]string{"data/resume.yml", "templates/cv.tex", "data/other.yml"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for path := range w.files {
		if !filepath.IsAbs(path) {
			t.Errorf("path %q is not absolute", path)
		}
	}
	if len(w.dirs) != 2 {
		t.Errorf("expected 2 watched dirs, got %v", w.dirs)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
}

func TestWatcher_ReportsContentChange(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "resume.yml")
	writeFile(t, data, "name: Ada\n")

	var rec recorder
	startWatcher(t, []string{data}, rec.onChange)

	writeFile(t, data, "name: Ada Lovelace\n")

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.seen()[data] > 0
	}, "change to data file not reported")
}

func TestWatcher_IgnoresUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "same.yml")
	changed := filepath.Join(dir, "changed.yml")
	writeFile(t, same, "name: Ada\n")
	writeFile(t, changed, "name: Ada\n")

	var rec recorder
	startWatcher(t, []string{same, changed}, rec.onChange)

	writeFile(t, same, "name: Ada\n")
	writeFile(t, changed, "name: Grace\n")

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.seen()[changed] > 0
	}, "change not reported")

	if n := rec.seen()[same]; n != 0 {
		t.Errorf("rewrite with identical content reported %d times", n)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "resume.yml")
	writeFile(t, data, "name: Ada\n")

	var rec recorder
	startWatcher(t, []string{data}, rec.onChange)

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")
	writeFile(t, data, "name: Grace\n")

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.seen()[data] > 0
	}, "change not reported")

	if len(rec.seen()) != 1 {
		t.Errorf("unexpected paths reported: %v", rec.seen())
	}
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "cv.html")

	var rec recorder
	startWatcher(t, []string{tmpl}, rec.onChange)

	writeFile(t, tmpl, "<p>{{ .Name }}</p>")

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.seen()[tmpl] > 0
	}, "created file not reported")
}

func TestWatcher_RenameOverFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "resume.yml")
	writeFile(t, data, "name: Ada\n")

	var rec recorder
	startWatcher(t, []string{data}, rec.onChange)

	tmp := filepath.Join(dir, ".resume.yml.swp")
	writeFile(t, tmp, "name: Grace Hopper\n")
	if err := os.Rename(tmp, data); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool {
		return rec.seen()[data] > 0
	}, "rename over watched file not reported")
}

func TestWatcher_CallbackErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "resume.yml")
	writeFile(t, data, "v1\n")

	var (
		mu    sync.Mutex
		calls int
	)
	startWatcher(t, []string{data}, func(context.Context, []string) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("render failed")
	})

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}

	writeFile(t, data, "v2\n")
	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return count() >= 1 },
		"first change not reported")

	writeFile(t, data, "version three\n")
	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return count() >= 2 },
		"watcher stopped after callback error")
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "resume.yml")
	writeFile(t, data, "name: Ada\n")

	w, err := New([]string{data})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(context.Context, []string) error { return nil }) }()

	<-w.Ready()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "missing", "resume.yml")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = w.Run(context.Background(), func(context.Context, []string) error { return nil })
	if err == nil {
		t.Error("expected error watching a missing directory")
	}
}
