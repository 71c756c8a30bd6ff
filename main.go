package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shardview/internal/catalog"
	"shardview/internal/config"
	"shardview/internal/domain"
	"shardview/internal/eventbus"
	"shardview/internal/listing"
	"shardview/internal/logging"
	"shardview/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// e2eEnv makes the binary announce readiness for the PTY harness
const e2eEnv = "SHARDVIEW_E2E_TEST"

var (
	configPath   string
	productsFlag string
	projectsFlag string
	watchFlag    bool
	verbose      bool
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "shardview",
	Short: "Browse products and projects in the terminal",
	Long: `shardview shows a product showcase carousel and filterable product and
project lists loaded from JSON or YAML sources (files or http URLs).

Sources default to data/products.json and data/projects.json and can be
overridden in the config file, with SHARDVIEW_PRODUCTS_URL and
SHARDVIEW_PROJECTS_URL, or with the flags below.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runUI,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Print the filter values of each collection",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after .env, environment and flag overrides.
With --write the result is saved to the config file.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shardview %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/shardview/config.toml)")
	rootCmd.PersistentFlags().StringVar(&productsFlag, "products", "", "Products source (file path or URL)")
	rootCmd.PersistentFlags().StringVar(&projectsFlag, "projects", "", "Projects source (file path or URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: shardview.log)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Reload file sources when they change")

	configCmd.Flags().BoolVar(&writeConfig, "write", false, "Save the effective configuration")

	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and then applies flag overrides
func loadConfig(cmd *cobra.Command) (config.ConfigService, *config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	svc := config.NewConfigService(configPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}

	if productsFlag != "" {
		cfg.Sources.Products = productsFlag
	}
	if projectsFlag != "" {
		cfg.Sources.Projects = projectsFlag
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = watchFlag
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return svc, cfg, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: verbose})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	bus := eventbus.New(logger)
	var background errgroup.Group
	defer func() {
		// Abort in-flight fetches before waiting on their handlers
		cancel()
		if err := background.Wait(); err != nil {
			logger.Warn("watcher stopped", zap.Error(err))
		}
		bus.Close()
	}()

	logger.Info("starting shardview",
		zap.String("version", version),
		zap.String("products", cfg.Sources.Products),
		zap.String("projects", cfg.Sources.Projects),
		zap.Bool("watch", cfg.Watch))

	loader := catalog.NewLoader(catalog.Options{
		Products: cfg.Sources.Products,
		Projects: cfg.Sources.Projects,
		Timeout:  cfg.Sources.Timeout.Std(),
		Bus:      bus,
		Logger:   logger,
	})
	unsubscribe := loader.Subscribe(ctx)
	defer unsubscribe()

	if cfg.Watch {
		watcher, err := catalog.NewWatcher(map[domain.CollectionKind]string{
			domain.KindProducts: cfg.Sources.Products,
			domain.KindProjects: cfg.Sources.Projects,
		}, bus, logger)
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			background.Go(func() error {
				return watcher.Run(ctx)
			})
		}
	}

	model := ui.NewModel(bus, cfg, logger.Named("ui"))
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx), tea.WithReportFocus()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	// Forward catalog outcomes to the UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventCatalogLoaded,
		eventbus.EventCatalogLoadFailed,
		eventbus.EventError,
	} {
		defer bus.Subscribe(eventType, forward)()
	}

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("interrupted")
			p.Quit()
		case <-ctx.Done():
		}
	}()

	model.Reload()

	if os.Getenv(e2eEnv) == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	if _, err := p.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("exited normally")
	return nil
}

func runFilters(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loader := catalog.NewLoader(catalog.Options{
		Products: cfg.Sources.Products,
		Projects: cfg.Sources.Projects,
		Timeout:  cfg.Sources.Timeout.Std(),
	})
	res := loader.LoadAll(cmd.Context())

	out := cmd.OutOrStdout()
	printFilters(out, domain.KindProducts, listing.FilterValues(res.Products, domain.FieldCategories), listing.DefaultLabel, res.Errors)
	printFilters(out, domain.KindProjects, listing.FilterValues(res.Projects, domain.FieldTechnologies), listing.IdentityLabel, res.Errors)
	return nil
}

func printFilters(out io.Writer, kind domain.CollectionKind, values []string, label listing.LabelFunc, errs map[domain.CollectionKind]error) {
	fmt.Fprintf(out, "%s:\n", kind)
	if err, ok := errs[kind]; ok {
		fmt.Fprintf(out, "  %s\n", catalog.FailureMessage(kind, err))
		return
	}
	if len(values) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf("%s (%s)", label(v), v)
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(labels, "\n  "))
}

func runConfig(cmd *cobra.Command, args []string) error {
	svc, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if writeConfig {
		if err := svc.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "# saved to %s\n", svc.Path())
	} else {
		fmt.Fprintf(out, "# %s\n", svc.Path())
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
