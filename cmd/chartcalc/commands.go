package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"equity-navigator/config"
	"equity-navigator/internal/compute"
	"equity-navigator/internal/csvio"
	"equity-navigator/internal/events"
	"equity-navigator/internal/logger"
	"equity-navigator/internal/metrics"
	"equity-navigator/internal/model"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chartcalc",
		Short:         "Technical indicator overlays and event annotations from OHLCV bar series",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newComputeCmd())
	root.AddCommand(newEventsCmd())
	return root
}

func newComputeCmd() *cobra.Command {
	var (
		setPath string
		inDir   string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute indicator overlays for every bar CSV in a directory",
		Long: `Reads one OHLCV CSV per ticker from --in, computes the indicators
declared in the --config indicator set, and writes one overlay CSV per
ticker to --out. A ticker with no or invalid data is reported and
skipped; it never aborts the rest of the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, setPath, inDir, outDir)
		},
	}
	cmd.Flags().StringVar(&setPath, "config", "", "indicator set YAML file")
	cmd.Flags().StringVar(&inDir, "in", ".", "directory of per-ticker bar CSVs")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for overlay CSVs")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runCompute(cmd *cobra.Command, setPath, inDir, outDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init("chartcalc", logger.ParseLevel(cfg.LogLevel))

	set, err := config.LoadIndicatorSet(setPath)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.NewMetrics()
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				log.Error("metrics server stopped", "err", err)
			}
		}()
	}

	inputs, err := loadInputs(log, inDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		log.Info("no bar CSVs found", "dir", inDir)
		return nil
	}

	runner := compute.NewRunner(cfg.Workers, log, m)
	results := runner.Run(cmd.Context(), inputs, set.Indicators)

	for _, res := range results {
		switch res.Status {
		case compute.StatusFailed:
			log.Error("ticker failed", "ticker", res.Ticker, "err", res.Err)
		case compute.StatusEmpty:
			log.Info("no bars for ticker, skipping output", "ticker", res.Ticker)
		default:
			path := filepath.Join(outDir, res.Ticker+"_overlays.csv")
			if err := writeOverlayFile(path, res); err != nil {
				log.Error("writing overlays", "ticker", res.Ticker, "err", err)
				continue
			}
			log.Info("overlays written", "ticker", res.Ticker, "path", path,
				"overlays", len(res.Overlays))
		}
	}
	return nil
}

func loadInputs(log *slog.Logger, dir string) ([]compute.Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var inputs []compute.Input
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Warn("skipping unreadable file", "path", path, "err", err)
			continue
		}
		bars, err := csvio.ReadBars(f)
		f.Close()
		if err != nil {
			log.Warn("skipping unparsable file", "path", path, "err", err)
			continue
		}
		ticker := strings.ToUpper(strings.TrimSuffix(e.Name(), ".csv"))
		inputs = append(inputs, compute.Input{Ticker: ticker, Bars: bars})
	}
	return inputs, nil
}

func writeOverlayFile(path string, res compute.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return csvio.WriteOverlays(f, res.Overlays)
}

func newEventsCmd() *cobra.Command {
	var (
		earningsPath string
		splitsPath   string
		fromStr      string
		toStr        string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Filter corporate events into a chart annotation window",
		Long: `Reads earnings and split records from CSV files, keeps the ones
inside the closed [--from, --to] window and writes them as CSV to
stdout. A missing or unreadable record file contributes no events; the
event source is best-effort by contract.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(earningsPath, splitsPath, fromStr, toStr)
		},
	}
	cmd.Flags().StringVar(&earningsPath, "earnings", "", "earnings records CSV (date,eps_actual,eps_estimate)")
	cmd.Flags().StringVar(&splitsPath, "splits", "", "split records CSV (date,ratio)")
	cmd.Flags().StringVar(&fromStr, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runEvents(earningsPath, splitsPath, fromStr, toStr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init("chartcalc", logger.ParseLevel(cfg.LogLevel))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return fmt.Errorf("bad --from date %q", fromStr)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return fmt.Errorf("bad --to date %q", toStr)
	}

	var earnings []model.EarningsRecord
	if earningsPath != "" {
		earnings = readEarningsBestEffort(log, earningsPath)
	}
	var splits []model.SplitRecord
	if splitsPath != "" {
		splits = readSplitsBestEffort(log, splitsPath)
	}

	filtered := events.FilterRange(earnings, splits, from, to)
	return csvio.WriteEvents(os.Stdout, filtered)
}

func readEarningsBestEffort(log *slog.Logger, path string) []model.EarningsRecord {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("earnings source unavailable", "path", path, "err", err)
		return nil
	}
	defer f.Close()
	recs, err := csvio.ReadEarnings(f)
	if err != nil {
		log.Warn("earnings source unreadable", "path", path, "err", err)
		return nil
	}
	return recs
}

func readSplitsBestEffort(log *slog.Logger, path string) []model.SplitRecord {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("splits source unavailable", "path", path, "err", err)
		return nil
	}
	defer f.Close()
	recs, err := csvio.ReadSplits(f)
	if err != nil {
		log.Warn("splits source unreadable", "path", path, "err", err)
		return nil
	}
	return recs
}
