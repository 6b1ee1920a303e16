package glasscan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glasscan/glasscan/internal/report"
	"github.com/glasscan/glasscan/internal/store"
	"github.com/glasscan/glasscan/internal/tui"
	"github.com/glasscan/glasscan/internal/types"
)

var (
	flagReportTarget string
	flagReportTUI    bool
)

func init() {
	reportCmd := &cobra.Command{
		Use:   "report [scan-id]",
		Short: "Render a stored scan result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().StringVar(&flagReportTarget, "target", "", "pick the latest result for this target")
	reportCmd.Flags().BoolVar(&flagReportTUI, "tui", false, "open the interactive finding browser")
	rootCmd.AddCommand(reportCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List past scans",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(historyCmd)
}

func openStore() (*store.Store, error) {
	return store.New(os.Getenv("GLASSCAN_DATA_DIR"))
}

func runReport(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	var res types.ScanResult
	if len(args) == 1 {
		res, err = st.Load(args[0])
	} else {
		res, err = st.Latest(flagReportTarget)
	}
	if err != nil {
		return fmt.Errorf("no stored scan found: %w", err)
	}

	if flagReportTUI && !flagJSON && !flagSARIF && !flagMarkdown {
		return tui.Run(res, nil)
	}

	switch {
	case flagSARIF:
		return report.WriteSARIF(os.Stdout, res, version)
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case flagMarkdown:
		return report.WriteMarkdown(os.Stdout, res)
	default:
		report.PrintTable(os.Stdout, res, report.PrintOptions{NoColor: flagNoColor})
		return nil
	}
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	records, err := st.History()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no scans recorded")
		return nil
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	table := tablewriter.NewTable(os.Stdout)
	table.Header("WHEN", "SCAN", "TARGET", "STATUS", "FINDINGS", "SCORE", "GRADE")
	for _, r := range records {
		table.Append([]string{
			r.Timestamp.Format("2006-01-02 15:04"),
			r.ScanID,
			r.Target,
			r.Status,
			fmt.Sprintf("%d", r.TotalFindings),
			fmt.Sprintf("%.1f", r.RiskScore),
			r.Grade,
		})
	}
	return table.Render()
}
