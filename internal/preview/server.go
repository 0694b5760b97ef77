// Package preview serves rendered resume templates over HTTP.
//
// Templates are read from disk on every request, so template edits show up
// on reload. The resume data is loaded once and reloaded whenever the data
// file changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/internal/watch"
	"github.com/yaklabco/cvrender/pkg/engine"
	"github.com/yaklabco/cvrender/pkg/mdast"
	"github.com/yaklabco/cvrender/pkg/resume"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// ErrNoData is reported while no valid resume data has been loaded.
var ErrNoData = errors.New("no resume data loaded")

// Server renders the templates of one directory with one resume.
type Server struct {
	engine       *engine.Engine
	parser       mdast.Parser
	dataPath     string
	templatesDir string
	logger       *log.Logger

	mu      sync.RWMutex
	data    *resume.Resume
	loadErr error
}

// New creates a Server. Call Reload before serving to load the data.
func New(eng *engine.Engine, parser mdast.Parser, dataPath, templatesDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		engine:       eng,
		parser:       parser,
		dataPath:     dataPath,
		templatesDir: templatesDir,
		logger:       logger,
		loadErr:      ErrNoData,
	}
}

// Reload loads the resume data file. On failure the previously loaded data
// stays in use and the error is returned.
func (s *Server) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("reload cancelled: %w", err)
	}

	data, err := resume.Load(s.dataPath, s.parser)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.data == nil {
			s.loadErr = err
		}
		return err
	}

	s.data = data
	s.loadErr = nil
	s.logger.Info("Loaded data", logging.FieldData, s.dataPath)

	return nil
}

// resume returns the current data, or the reason there is none.
func (s *Server) resume() (*resume.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.loadErr
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and reloads the data whenever the data file changes.
// It returns nil after ctx is cancelled and the server has shut down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	watcher, err := watch.New([]string{s.dataPath}, watch.WithLogger(s.logger))
	if err != nil {
		_ = ln.Close()
		return err
	}

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return watcher.Run(groupCtx, func(ctx context.Context, _ []string) error {
			return s.Reload(ctx)
		})
	})

	group.Go(func() error {
		s.logger.Info("Serving preview", logging.FieldAddr, "http://"+ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		s.logger.Debug("Shutting down preview server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}

// templatePath returns the path of the template called name, rejecting
// names that would leave the templates directory.
func (s *Server) templatePath(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return filepath.Join(s.templatesDir, name), true
}
