// Command copcat harvests the dataset catalogs of the Copernicus portals and
// saves each one as Parquet, Excel and CSV.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/vegasq/copcat/config"
	"github.com/vegasq/copcat/output"
	"github.com/vegasq/copcat/pipeline"
	"github.com/vegasq/copcat/source"
)

type options struct {
	configPath string
	outputDir  string
	timeout    time.Duration
	only       []string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "copcat",
		Short: "Harvest Copernicus dataset catalogs into Parquet, Excel and CSV",
		Long: `copcat fetches the dataset catalog of every Copernicus portal and writes
one table per portal to <out>/parquet, <out>/excel and <out>/csv.

A failing portal is logged and skipped; the command still exits 0.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHarvest(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "copcat.json5", "JSON5 configuration file (optional)")
	pf.DurationVar(&opts.timeout, "timeout", config.Defaults().Timeout(), "HTTP request timeout")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	f := cmd.Flags()
	f.StringVar(&opts.outputDir, "out", config.Defaults().OutputDir, "Output directory")
	f.StringSliceVar(&opts.only, "only", nil, "Comma-separated source names to run (default all)")

	cmd.AddCommand(
		newPreviewCmd(opts),
		newSchemaCmd(),
		newSourcesCmd(opts),
	)
	return cmd
}

func runHarvest(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	adapters, err := source.Select(source.Catalog(cfg.Endpoints), opts.only)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.OutOrStdout(), opts.verbose).With("run", uuid.NewString())
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "config", opts.configPath, "out", cfg.OutputDir, "timeout", cfg.Timeout())

	exporter := output.NewExporter(output.Layout{Root: cfg.OutputDir}, logger)
	runner := pipeline.NewRunner(source.NewClient(cfg.Timeout()), exporter, adapters, logger)

	outcomes, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	pipeline.WriteSummary(cmd.OutOrStdout(), outcomes)
	return nil
}

// loadConfig reads the configuration file and applies explicitly set flags
// on top of it.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.OutputDir = opts.outputDir
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		if opts.timeout < time.Second || opts.timeout%time.Second != 0 {
			return config.Config{}, fmt.Errorf("--timeout must be a whole number of seconds, got %s", opts.timeout)
		}
		cfg.TimeoutSeconds = int(opts.timeout / time.Second)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
