package glasscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagMarkdown      bool
	flagFailOn        string
	flagNoColor       bool
	flagMinConfidence float64
	flagNoUpdateCheck bool
	flagSelfUpdate    bool
	flagVerbose       bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the Glasscan CLI.
var rootCmd = &cobra.Command{
	Use:           "glasscan",
	Short:         "Find client-side exposures in web page captures",
	Long:          "Glasscan analyzes captured web pages (scripts, storage, cookies, network traffic) and reports exposed secrets, risky tokens and hygiene gaps with low noise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the Glasscan CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagMarkdown, "markdown", false, "emit a Markdown report")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "high", "fail on low|medium|high|critical")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update glasscan to the latest release")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI logger. Machine-readable output modes keep the
// log on stderr only and quiet by default.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
