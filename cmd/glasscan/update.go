package glasscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glasscan/glasscan/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update glasscan to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if latest, newer, err := update.Check(version, false); err == nil && !newer {
				fmt.Fprintf(os.Stderr, "already up to date (v%s, latest v%s)\n", version, latest)
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintln(os.Stderr, "updated to latest release")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the glasscan version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("glasscan v" + version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}
