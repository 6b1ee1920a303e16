package glasscan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glasscan/glasscan/internal/config"
	"github.com/glasscan/glasscan/internal/engine"
	"github.com/glasscan/glasscan/internal/patterns"
	"github.com/glasscan/glasscan/internal/progress"
	"github.com/glasscan/glasscan/internal/report"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/store"
	"github.com/glasscan/glasscan/internal/tui"
	"github.com/glasscan/glasscan/internal/types"
	"github.com/glasscan/glasscan/internal/update"
)

var (
	flagCapture         string
	flagTarget          string
	flagDepth           string
	flagEnvironment     string
	flagInclude         string
	flagExclude         string
	flagEnable          string
	flagDisable         string
	flagPatternsFile    string
	flagScanTimeout     time.Duration
	flagDetectorTimeout time.Duration
	flagBaseline        string
	flagUpdateBaseline  bool
	flagNoStore         bool
	flagTUI             bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a page capture for exposures",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagCapture, "capture", "c", "", "path to a page capture JSON file (required)")
	cmd.Flags().StringVarP(&flagTarget, "target", "t", "", "target URL (defaults to the capture's target)")
	cmd.Flags().StringVar(&flagDepth, "depth", "", "scan depth: quick|standard|deep")
	cmd.Flags().StringVar(&flagEnvironment, "environment", "", "override detected environment: development|staging|production")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated script URL include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated script URL exclude globs")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagPatternsFile, "patterns", "", "YAML file with additional secret patterns")
	cmd.Flags().DurationVar(&flagScanTimeout, "timeout", 0, "abort the whole scan after this duration (0 = no limit)")
	cmd.Flags().DurationVar(&flagDetectorTimeout, "detector-timeout", 0, "per-detector time budget (default 10s)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file; known findings are filtered out")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "write this scan's findings to the baseline file")
	cmd.Flags().BoolVar(&flagNoStore, "no-store", false, "do not persist the scan result")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "open the interactive finding browser after the scan")

	_ = cmd.MarkFlagRequired("capture")
}

func runScan(cmd *cobra.Command, _ []string) error {
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	cwd, _ := os.Getwd()
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	}

	flagNoColor = pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if !stdoutIsTerminal() {
		flagNoColor = true
	}
	machineOutput := flagJSON || flagSARIF || flagMarkdown
	if !machineOutput {
		if !pickBool(flagNoUpdateCheck, lcfg.NoUpdateCheck, gcfg.NoUpdateCheck) {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'glasscan update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	capture, err := signals.LoadCapture(flagCapture)
	if err != nil {
		return fmt.Errorf("failed to load capture: %w", err)
	}

	pats := patterns.Builtin()
	if pf := pickString(flagPatternsFile, lcfg.PatternsFile, gcfg.PatternsFile); pf != "" {
		custom, err := patterns.LoadCustom(pf)
		if err != nil {
			return fmt.Errorf("failed to load custom patterns: %w", err)
		}
		pats = append(pats, custom...)
	}

	scanTimeout := flagScanTimeout
	if scanTimeout == 0 {
		if s := pickDuration("", lcfg.ScanTimeout, gcfg.ScanTimeout); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				scanTimeout = d
			}
		}
	}
	detectorTimeout := flagDetectorTimeout
	if detectorTimeout == 0 {
		if s := pickDuration("", lcfg.DetectorTimeout, gcfg.DetectorTimeout); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				detectorTimeout = d
			}
		}
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	var sink progress.Sink = progress.NoopSink{}
	if !machineOutput {
		sink = progress.NewPlainSink(os.Stderr)
	}

	orch := engine.New(engine.Options{
		DetectorTimeout:  detectorTimeout,
		ScanTimeout:      scanTimeout,
		MinConfidence:    pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence),
		EnableDetectors:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableDetectors: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		IncludeGlobs:     pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:     pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		Patterns:         pats,
		Progress:         sink,
		Logger:           log,
	})

	depth := signals.ParseDepth(pickString(flagDepth, lcfg.Depth, gcfg.Depth))
	started := time.Now()
	res, err := orch.Scan(context.Background(), engine.Request{
		Target:      flagTarget,
		Depth:       depth,
		Environment: pickString(flagEnvironment, lcfg.Environment, gcfg.Environment),
		Capture:     capture,
	})
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if !flagNoStore {
		dataDir := pickString(os.Getenv("GLASSCAN_DATA_DIR"), lcfg.DataDir, gcfg.DataDir)
		if st, serr := store.New(dataDir); serr == nil {
			if serr := st.Save(res); serr != nil {
				log.Warn("failed to persist scan result", zap.Error(serr))
			}
			if keep := pickInt(0, lcfg.KeepResults, gcfg.KeepResults); keep > 0 {
				if serr := st.Prune(keep); serr != nil {
					log.Warn("failed to prune old results", zap.Error(serr))
				}
			}
		}
	}

	if flagBaseline != "" {
		if flagUpdateBaseline {
			if err := report.SaveBaseline(flagBaseline, res.Findings); err != nil {
				return fmt.Errorf("failed to write baseline: %w", err)
			}
		} else {
			baseline, _ := report.LoadBaseline(flagBaseline)
			res.Findings = report.FilterNewFindings(res.Findings, baseline)
		}
	}
	if res.Findings == nil {
		res.Findings = []types.Finding{} // no `null` in JSON
	}

	if err := emitResult(res, started); err != nil {
		return err
	}

	if flagTUI && !machineOutput && stdoutIsTerminal() {
		rescan := func() (types.ScanResult, error) {
			return orch.Scan(context.Background(), engine.Request{
				Target:      flagTarget,
				Depth:       depth,
				Environment: pickString(flagEnvironment, lcfg.Environment, gcfg.Environment),
				Capture:     capture,
			})
		}
		if err := tui.Run(res, rescan); err != nil {
			return err
		}
	}

	if report.ShouldFail(res.Findings, pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)) {
		os.Exit(1)
	}
	return nil
}

func emitResult(res types.ScanResult, started time.Time) error {
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	case flagMarkdown:
		if err := report.WriteMarkdown(os.Stdout, res); err != nil {
			return err
		}
	default:
		report.PrintTable(os.Stdout, res, report.PrintOptions{
			NoColor:  flagNoColor,
			Duration: time.Since(started),
		})
	}
	return nil
}
