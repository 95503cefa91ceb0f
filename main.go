package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/logger"
	"github.com/olivier-w/folio/internal/metrics"
	"github.com/olivier-w/folio/internal/ui"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath  string
	contentPath string
	logFile     string
	metricsAddr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "folio",
		Short:         "A scrolling portfolio page for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file (default $FOLIO_CONFIG)")
	root.PersistentFlags().StringVar(&f.contentPath, "content", "", "YAML profile to show (default built-in)")
	root.Flags().StringVar(&f.logFile, "log", "", "append logs to this file")
	root.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newSectionsCmd(&f))
	return root
}

func newSectionsCmd(f *flags) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Print section anchors for a terminal size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), *f)
			if err != nil {
				return err
			}
			p, err := content.Load(cfg.ContentPath)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDER\tID\tANCHOR")
			for _, s := range ui.Anchors(p, width, height, cfg.ParticlesEnabled) {
				fmt.Fprintf(w, "%d\t%s\t%d\n", s.Order, s.ID, int(s.Anchor))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "terminal width in columns")
	cmd.Flags().IntVar(&height, "height", 24, "terminal height in rows")
	return cmd
}

func loadConfig(ctx context.Context, f flags) (*config.Config, error) {
	cfg, err := config.Load(ctx, f.configPath)
	if err != nil {
		return nil, err
	}
	if f.contentPath != "" {
		cfg.ContentPath = f.contentPath
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
	return cfg, nil
}

func run(parent context.Context, f flags) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, f)
	if err != nil {
		return err
	}

	if err := logger.InitFile(cfg.LogFile); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Named("main")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mgr := newMetricsManager()
	if cfg.MetricsAddr != "" {
		addr, err := mgr.Serve(ctx, cfg.MetricsAddr)
		if err != nil {
			return err
		}
		log.Info(ctx, "serving metrics", logger.String("addr", addr.String()))
	}

	program := tea.NewProgram(newStartupModel(cfg, mgr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return err
	}
	if startup, ok := final.(startupModel); ok && startup.Err() != nil {
		return startup.Err()
	}
	log.Info(ctx, "exited")
	return nil
}

// newMetricsManager builds the page metrics plus the Go runtime and process
// collectors.
func newMetricsManager() *metrics.Manager {
	mgr := metrics.NewManager(metrics.WithLogger(logger.Named("metrics")))
	mgr.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return mgr
}
