package glasscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glasscan/glasscan/internal/detectors"
	"github.com/glasscan/glasscan/internal/patterns"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(_ *cobra.Command, _ []string) {
			for _, id := range detectors.IDs() {
				fmt.Println(id)
			}
		},
	}
	rootCmd.AddCommand(cmd)

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "List built-in secret patterns",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pattern library %s\n", patterns.LibraryVersion)
			for _, id := range patterns.IDs() {
				fmt.Println(id)
			}
		},
	}
	rootCmd.AddCommand(patternsCmd)
}
