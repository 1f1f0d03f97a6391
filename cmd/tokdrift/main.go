package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tokdrift/internal/campaign"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
	"tokdrift/internal/report"
	"tokdrift/internal/request"
)

var (
	verbose     bool
	seed        uint64
	archivePath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tokdrift [config]",
	Short: "tokdrift - randomized-timing campaign runner for batched account sessions",
	Long: `tokdrift drives a batch of account sessions through configurable, timed
sequences of simulated-human actions: feed warming, profile updates, and
mass interactions. Accounts run strictly one after another with randomized
delays; one account's failure never aborts the batch.

The single optional argument is the configuration path (default ./config.json).`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCampaign,
}

var runsCmd = &cobra.Command{
	Use:   "runs [config]",
	Short: "List archived runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listRuns,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&archivePath, "archive", "", "override the run archive path")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "pin the random source for a reproducible run")

	rootCmd.AddCommand(runsCmd)
}

func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "./config.json"
}

func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath(args))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if archivePath != "" {
		cfg.Archive.Enabled = true
		cfg.Archive.Path = archivePath
	}
	return cfg, nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	var engine *humanize.Engine
	if cmd.Flags().Changed("seed") {
		engine = humanize.NewSeeded(seed)
		logger.Info("random source pinned", zap.Uint64("seed", seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orchestrator := campaign.NewOrchestrator(campaign.OrchestratorConfig{
		Config: cfg,
		Engine: engine,
		// The signing HTTP transport attaches here; this build dispatches
		// into the static stub and reports the descriptors it would send.
		Transport: &request.StaticTransport{},
		Logger:    logger,
	})

	run, runErr := orchestrator.Run(ctx)
	if run != nil {
		fmt.Fprint(cmd.OutOrStdout(), report.Summary(run))
		if cfg.Archive.Enabled {
			if err := archiveRun(ctx, cfg.Archive.Path, run); err != nil {
				logger.Warn("run not archived", zap.Error(err))
			}
		}
	}
	return runErr
}

func archiveRun(ctx context.Context, path string, run *report.RunReport) error {
	store, err := report.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(ctx, run)
}

func listRuns(cmd *cobra.Command, args []string) error {
	path := archivePath
	if path == "" {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		path = cfg.Archive.Path
	}

	store, err := report.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), 20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no archived runs")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d results (%d failed)\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Results, r.Failed)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
