package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glasscan/glasscan/internal/types"
)

// Run starts the interactive finding browser. rescanFunc may be nil when
// viewing stored results; the rescan key is then a no-op.
func Run(res types.ScanResult, rescanFunc func() (types.ScanResult, error)) error {
	m := NewModel(res, rescanFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
