package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/waveforge/histwin/internal/job"
	"github.com/waveforge/histwin/internal/migrate"
	"github.com/waveforge/histwin/internal/version"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histwin",
		Short: "Sliding-window histogram computation for 1D signals",
		Long: `histwin computes a histogram over every window of a strided
sliding window across a one-dimensional signal, using a differential
update instead of re-binning each window from scratch. Results go to
CSV files, ClickHouse, or an HTTP collector.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.PersistentFlags().StringVar(
		&cfgFile, "config", "",
		"path to config file (required)",
	)
	cmd.Flags().StringVar(
		&logLevel, "log-level", "",
		"override log level (debug, info, warn, error)",
	)

	if err := cmd.MarkPersistentFlagRequired("config"); err != nil {
		fmt.Fprintf(os.Stderr, "error marking flag required: %v\n", err)
		os.Exit(1)
	}

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(migrateCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.FullWithPlatform())
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Manage the ClickHouse schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, cfg, err := setup()
			if err != nil {
				return err
			}

			if cfg.ClickHouse.Endpoint == "" {
				return fmt.Errorf("clickhouse.endpoint is required for migrations")
			}

			cfg.ClickHouse.ApplyDefaults()

			m := migrate.New(log, cfg.ClickHouse.DSN())
			ctx := cmd.Context()

			switch args[0] {
			case "up":
				return m.Up(ctx)
			case "down":
				return m.Down(ctx)
			case "status":
				v, dirty, err := m.Status(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("version: %d, dirty: %v\n", v, dirty)

				return nil
			default:
				return fmt.Errorf("unknown migrate action %q", args[0])
			}
		},
	}

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	log, cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()

	j := job.New(log, cfg)

	log.Info("Starting histwin run")

	if err := j.Run(ctx); err != nil {
		return err
	}

	log.Info("Run complete")

	return nil
}

// setup loads the config and builds the logger shared by all commands.
func setup() (*logrus.Logger, *job.Config, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := job.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// CLI flag overrides config file.
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
	}

	log.SetLevel(level)

	return log, cfg, nil
}
