package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/escape"
	"github.com/yaklabco/cvrender/pkg/fsutil"
	"github.com/yaklabco/cvrender/pkg/runner"
	"github.com/yaklabco/cvrender/pkg/tmpltype"
)

// Content types by template type.
const (
	contentTypeHTML  = "text/html; charset=utf-8"
	contentTypeTeX   = "text/x-tex; charset=utf-8"
	contentTypePlain = "text/plain; charset=utf-8"
)

// Handler returns the preview routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.listTemplates)
	r.Get("/t/{name}", s.renderTemplate)
	r.Get("/healthz", s.health)

	return r
}

// logRequests attaches a logger carrying the request ID to the request
// context and logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		ctx := logging.WithLogger(r.Context(), s.logger)
		ctx, logger := logging.WithFields(ctx, logging.FieldRequestID, middleware.GetReqID(ctx))

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Debug("Request",
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldStatus, ww.Status(),
			logging.FieldDuration, time.Since(start),
		)
	})
}

// listTemplates handles GET /.
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	paths, err := runner.Discover(r.Context(), s.templatesDir)
	if err != nil {
		logging.FromContext(r.Context()).Error("Cannot list templates", logging.FieldError, err)
		http.Error(w, "cannot list templates", http.StatusInternalServerError)
		return
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html><head><title>cvrender preview</title></head><body>\n<ul>\n")
	for _, path := range paths {
		name := escape.HTML(filepath.Base(path))
		page.WriteString(`<li><a href="/t/` + name + `">` + name + "</a> (" +
			tmpltype.Detect(path).String() + ")</li>\n")
	}
	page.WriteString("</ul>\n</body></html>\n")

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = w.Write([]byte(page.String()))
}

// renderTemplate handles GET /t/{name}.
func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	path, ok := s.templatePath(name)
	if !ok || !fsutil.IsFile(path) || !runner.IsTemplate(name) {
		http.NotFound(w, r)
		return
	}

	data, err := s.resume()
	if data == nil {
		logging.FromContext(r.Context()).Warn("Preview requested without data", logging.FieldError, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	tmpl, err := s.engine.LoadTemplate(path)
	if err != nil {
		renderError(w, r, name, err)
		return
	}

	var buf bytes.Buffer
	if err := s.engine.Render(r.Context(), &buf, tmpl, data); err != nil {
		renderError(w, r, name, err)
		return
	}

	w.Header().Set("Content-Type", contentType(tmpl.Type))
	_, _ = w.Write(buf.Bytes())
}

func renderError(w http.ResponseWriter, r *http.Request, name string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, os.ErrNotExist) {
		status = http.StatusNotFound
	}

	logging.FromContext(r.Context()).Error("Preview failed", logging.FieldTemplate, name, logging.FieldError, err)
	http.Error(w, err.Error(), status)
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}

	if _, err := s.resume(); err != nil {
		status = http.StatusServiceUnavailable
		body = map[string]string{"status": "no data", "error": err.Error()}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).Error("Cannot encode health response", logging.FieldError, err)
	}
}

func contentType(typ tmpltype.Type) string {
	switch typ {
	case tmpltype.HTML:
		return contentTypeHTML
	case tmpltype.TeX:
		return contentTypeTeX
	case tmpltype.Unknown:
		return contentTypePlain
	}
	return contentTypePlain
}
