// Package engine connects validated resume data, the Markdown renderers and
// the template layer.
//
// An Engine exposes the template function map (markdown_latex, escape_html,
// normalize_url, ...), builds the per-template data (context and static
// disclaimers) and executes text/template templates. It holds no mutable
// state after construction and is safe for concurrent use.
package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultGenerator is the generator name written into disclaimers.
const DefaultGenerator = "cvrender"

// DefaultDateFormat is the strftime pattern of the disclaimer timestamp.
const DefaultDateFormat = "%Y-%m-%d %H:%M:%S"

// fallbackLayout formats the disclaimer timestamp when the configured
// pattern is invalid.
const fallbackLayout = "2006-01-02 15:04:05"

// Engine renders resume templates.
type Engine struct {
	logger     *log.Logger
	now        func() time.Time
	generator  string
	dateFormat string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Without it the engine is silent.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the time source used by disclaimers and
// format_current_time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithGenerator sets the generator name written into disclaimers.
func WithGenerator(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.generator = name
		}
	}
}

// WithDateFormat sets the strftime pattern of the disclaimer timestamp.
func WithDateFormat(pattern string) Option {
	return func(e *Engine) {
		if pattern != "" {
			e.dateFormat = pattern
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:     log.New(io.Discard),
		now:        time.Now,
		generator:  DefaultGenerator,
		dateFormat: DefaultDateFormat,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}
