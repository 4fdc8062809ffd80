package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"geosearch/internal/config"
	"geosearch/internal/eventbus"
	"geosearch/internal/logging"
	"geosearch/internal/provider"
	"geosearch/internal/search"
	"geosearch/internal/ui"
)

type options struct {
	configPath string
	limit      int
	perPage    int
	logLevel   string
}

// NewRootCmd creates the geosearch command
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "geosearch [query]",
		Short: "Search places by name prefix",
		Long: "geosearch looks up cities whose name starts with the typed text and\n" +
			"pages through the results in the terminal.",
		Example: `  # Start with an empty search box
  geosearch

  # Search straight away, ten results per request
  geosearch --limit 10 Par`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			a, err := newApp(cmd, opts, query)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run(tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "results requested per page (1-10)")
	cmd.Flags().IntVarP(&opts.perPage, "per-page", "p", 0, "results shown per page (1-10)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

// app is one run of the widget with everything it depends on
type app struct {
	cfg     *config.Config
	configs config.ConfigService
	logger  zerolog.Logger
	bus     eventbus.EventBus
	ctrl    *search.Controller
	model   *ui.Model

	// sizes given on the command line are not remembered
	sizesFromFlags bool
	closers        []func()
}

func newApp(cmd *cobra.Command, opts *options, query string) (*app, error) {
	if _, err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	loader := config.NewConfigServiceWithBus(nil, opts.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Search.Limit = opts.limit
	}
	if flags.Changed("per-page") {
		cfg.Search.PerPage = opts.perPage
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", loader.Path(), err)
	}

	logger, logCloser, err := logging.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:            cfg,
		logger:         logger,
		sizesFromFlags: flags.Changed("limit") || flags.Changed("per-page"),
	}
	a.closers = append(a.closers, func() { _ = logCloser.Close() })

	a.bus = eventbus.New(logger)
	a.closers = append(a.closers, a.bus.Close)
	a.closers = append(a.closers, logging.Subscribe(a.bus, logger))

	a.configs = config.NewConfigServiceWithBus(a.bus, loader.Path())
	a.bus.Publish(eventbus.ConfigLoadedEvent{Path: loader.Path()})

	client, err := provider.NewGeoDBClient(provider.GeoDBOptions{
		URL:     cfg.API.URL,
		Host:    cfg.API.Host,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout.Duration,
		Logger:  logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.API.Key == "" {
		logger.Warn().Msg("no api key configured, requests will likely be rejected")
	}

	a.ctrl = search.NewController(client, search.Options{
		Limit:   cfg.Search.Limit,
		PerPage: cfg.Search.PerPage,
		Bus:     a.bus,
		Logger:  logger,
	})
	a.model = ui.NewModel(a.ctrl, ui.Options{InitialQuery: query, Logger: logger})
	a.closers = append(a.closers, a.model.Close)

	return a, nil
}

// Run blocks until the program exits, then remembers the page sizes
func (a *app) Run(opts ...tea.ProgramOption) error {
	a.logger.Info().Str("config", a.configs.Path()).Msg("starting")

	if _, err := tea.NewProgram(a.model, opts...).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return a.rememberSizes()
}

// rememberSizes saves page sizes changed in the widget as the new defaults
func (a *app) rememberSizes() error {
	if a.sizesFromFlags {
		return nil
	}
	snap := a.ctrl.Snapshot()
	if snap.Limit == a.cfg.Search.Limit && snap.PerPage == a.cfg.Search.PerPage {
		return nil
	}

	// reload so environment overrides are not written to the file
	cfg, err := a.configs.LoadFromPath(a.configs.Path())
	if err != nil {
		return fmt.Errorf("remember page sizes: %w", err)
	}
	cfg.Search.Limit = snap.Limit
	cfg.Search.PerPage = snap.PerPage
	if err := a.configs.Save(cfg); err != nil {
		return fmt.Errorf("remember page sizes: %w", err)
	}
	a.logger.Info().Int("limit", snap.Limit).Int("per_page", snap.PerPage).Msg("page sizes saved")
	return nil
}

// Close tears down in reverse order of construction. It is safe to call
// more than once.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
