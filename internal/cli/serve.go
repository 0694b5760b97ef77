package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/internal/preview"
	"github.com/yaklabco/cvrender/pkg/config"
	"github.com/yaklabco/cvrender/pkg/fsutil"
)

type serveFlags struct {
	data      string
	templates string
	addr      string
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview rendered templates in a browser",
		Long: `Serve a local preview of every template in a directory.

Templates are rendered on each request, so template edits show up on reload.
The resume data is reloaded whenever the data file changes; while the new
data is invalid the previous version keeps being served.

Routes:
  GET /           list of templates
  GET /t/{name}   the rendered template
  GET /healthz    health check

Examples:
  cvrender serve -d resume.yml -t templates/
  cvrender serve -d resume.yml -t templates/ --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "resume data file (YAML)")
	cmd.Flags().StringVarP(&flags.templates, "templates", "t", "", "templates directory (default from config)")
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default "+config.DefaultServeAddr+")")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	if err := requireFlag("data", flags.data); err != nil {
		return err
	}

	logging.SetDefault(logging.NewInteractive())

	cliCfg := &config.Config{
		TemplatesDir: flags.templates,
		Serve:        config.ServeConfig{Addr: flags.addr},
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger := logging.Default()

	if cfg.TemplatesDir == "" {
		return fmt.Errorf("%w: no templates directory; use --templates or set templates_dir", ErrInvalidUsage)
	}
	if !fsutil.IsDir(cfg.TemplatesDir) {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidUsage, cfg.TemplatesDir)
	}
	if !fsutil.IsFile(flags.data) {
		return fmt.Errorf("%w: %s", fsutil.ErrNotFound, flags.data)
	}

	ctx := commandContext(cmd)
	server := preview.New(newEngine(cfg, logger), newParser(cfg), flags.data, cfg.TemplatesDir, logger)

	if err := server.Reload(ctx); err != nil {
		return err
	}

	logger.Info("Starting preview",
		logging.FieldTemplates, cfg.TemplatesDir,
		logging.FieldAddr, cfg.Serve.Addr,
	)

	return server.Run(ctx, cfg.Serve.Addr)
}
