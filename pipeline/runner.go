// Package pipeline drives a harvest run: every adapter is fetched in turn and
// each successful record set is exported to all formats.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/copcat/output"
	"github.com/vegasq/copcat/source"
)

// Outcome is the result of one adapter within a run.
type Outcome struct {
	Source string
	Title  string
	Rows   int
	// Files lists the artifacts written for the source.
	Files []string
	// ExcelErr is set when only the spreadsheet could not be written.
	ExcelErr error
	// Err is set when the source produced no artifacts.
	Err error
	// Empty is set when the source returned no records.
	Empty   bool
	Skipped bool
	Elapsed time.Duration
}

// Status summarizes the outcome in one word.
func (o Outcome) Status() string {
	switch {
	case o.Skipped:
		return "skipped"
	case o.Err != nil:
		return "failed"
	case o.ExcelErr != nil:
		return "partial"
	case o.Empty:
		return "empty"
	default:
		return "ok"
	}
}

// Runner runs a fixed list of adapters sequentially.
type Runner struct {
	client   *resty.Client
	exporter *output.Exporter
	logger   *slog.Logger
	adapters []source.Adapter
}

// NewRunner creates a runner. A nil logger uses slog.Default().
func NewRunner(client *resty.Client, exporter *output.Exporter, adapters []source.Adapter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		client:   client,
		exporter: exporter,
		logger:   logger,
		adapters: adapters,
	}
}

// Run initializes the output tree and processes every adapter.
//
// The only returned error is a failure to create the output tree; per-source
// failures are logged and reported in the outcomes.
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	if err := r.exporter.Layout().Ensure(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		outcomes = append(outcomes, r.runOne(ctx, adapter))
	}

	r.logger.Info("finished", "sources", len(outcomes), "failed", countFailed(outcomes))
	return outcomes, nil
}

func (r *Runner) runOne(ctx context.Context, adapter source.Adapter) (outcome Outcome) {
	outcome = Outcome{Source: adapter.Name, Title: adapter.Title}
	if adapter.Disabled {
		outcome.Skipped = true
		r.logger.Info("source skipped", "source", adapter.Name, "reason", adapter.Reason)
		return outcome
	}

	start := time.Now()
	defer func() { outcome.Elapsed = time.Since(start) }()

	r.logger.Debug("fetching", "source", adapter.Name, "url", adapter.Request.URL)
	res := adapter.Fetch(ctx, r.client)
	if res.Err != nil {
		outcome.Err = res.Err
		r.logger.Warn("source failed", "source", adapter.Name, "title", adapter.Title, "err", res.Err)
		return outcome
	}
	outcome.Rows = res.Set.Len()

	report, err := r.exporter.Export(res.Set, adapter.Name)
	outcome.Files = report.Files
	outcome.ExcelErr = report.ExcelErr
	outcome.Empty = report.Empty
	if err != nil {
		outcome.Err = err
		r.logger.Warn("source failed", "source", adapter.Name, "title", adapter.Title, "err", err)
	}
	return outcome
}

func countFailed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// WriteSummary renders the outcomes as a table.
func WriteSummary(w io.Writer, outcomes []Outcome) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Status", "Rows", "Files", "Elapsed", "Error"})
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		var errText string
		switch {
		case o.Err != nil:
			errText = o.Err.Error()
		case o.ExcelErr != nil:
			errText = fmt.Sprintf("excel: %v", o.ExcelErr)
		}

		rows := ""
		if !o.Skipped && o.Err == nil {
			rows = strconv.Itoa(o.Rows)
		}
		table.Append([]string{
			o.Source,
			o.Status(),
			rows,
			strconv.Itoa(len(o.Files)),
			o.Elapsed.Round(time.Millisecond).String(),
			errText,
		})
	}
	table.Render()
}
