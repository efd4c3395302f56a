package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/copcat/output"
	"github.com/vegasq/copcat/record"
	"github.com/vegasq/copcat/source"
)

func newPreviewCmd(opts *options) *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "preview <source>",
		Short: "Fetch one source and print its table without writing files",
		Example: `  copcat preview climate --limit 5
  copcat preview land -f csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}
			formatter, err := stdoutFormatter(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			adapter, ok := source.Find(source.Catalog(cfg.Endpoints), args[0])
			if !ok {
				return fmt.Errorf("unknown source %q", args[0])
			}

			// Logs go to stderr so stdout stays machine readable.
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			logger.Debug("fetching", "source", adapter.Name, "url", adapter.Request.URL)

			res := adapter.Fetch(cmd.Context(), source.NewClient(cfg.Timeout()))
			if res.Err != nil {
				return fmt.Errorf("%s: %w", adapter.Name, res.Err)
			}

			set := res.Set
			if limit > 0 && set.Len() > limit {
				set = record.New(set.Rows[:limit])
			}
			logger.Info("fetched", "source", adapter.Name, "rows", res.Set.Len(), "shown", set.Len())

			formatter.SetOutput(cmd.OutOrStdout())
			return formatter.Format(set)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Output format: jsonl, csv")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of rows (0 = unlimited)")
	return cmd
}

func stdoutFormatter(format string) (output.Formatter, error) {
	switch format {
	case "jsonl", "json":
		return output.NewJSONFormatter(nil), nil
	case "csv":
		return output.NewCSVFormatter(nil), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use jsonl or csv)", format)
	}
}
