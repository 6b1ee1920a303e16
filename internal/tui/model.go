package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasscan/glasscan/internal/scoring"
	"github.com/glasscan/glasscan/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	fpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Strikethrough(true)
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "CRIT"
	case types.SevHigh:
		return "HIGH"
	case types.SevMedium:
		return "MED"
	case types.SevLow:
		return "LOW"
	default:
		return string(s)
	}
}

type statusMsg string

type rescanMsg struct {
	res types.ScanResult
	err error
}

// Model is the interactive finding browser. It owns a copy of the scan
// result; toggling false positives re-aggregates the summary in place.
type Model struct {
	res      types.ScanResult
	indices  []int // filtered row index -> res.Findings index
	tbl      table.Model
	detail   string
	spinner  spinner.Model
	search   textinput.Model
	query    string
	scanning bool
	ready    bool
	width    int
	height   int
	status   string
	showHelp bool
	rescan   func() (types.ScanResult, error)
}

func NewModel(res types.ScanResult, rescan func() (types.ScanResult, error)) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "filter findings"
	search.CharLimit = 64

	cols := []table.Column{
		{Title: "SEV", Width: 5},
		{Title: "TYPE", Width: 24},
		{Title: "LOCATION", Width: 40},
		{Title: "EVIDENCE", Width: 20},
	}
	tbl := table.New(table.WithColumns(cols), table.WithFocused(true))

	m := &Model{res: res, tbl: tbl, spinner: sp, search: search, rescan: rescan}
	m.rebuildRows()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// rebuildRows refreshes table rows from the finding list and current filter.
func (m *Model) rebuildRows() {
	m.indices = m.indices[:0]
	rows := make([]table.Row, 0, len(m.res.Findings))
	q := strings.ToLower(m.query)
	for i, f := range m.res.Findings {
		if q != "" && !matchesQuery(f, q) {
			continue
		}
		sev := severityText(f.Severity)
		typ := string(f.Type)
		if f.FalsePositive {
			sev = fpStyle.Render(sev)
			typ = fpStyle.Render(typ)
		}
		rows = append(rows, table.Row{sev, typ, f.Location.String(), f.Evidence})
		m.indices = append(m.indices, i)
	}
	m.tbl.SetRows(rows)
	m.refreshDetail()
}

func matchesQuery(f types.Finding, q string) bool {
	return strings.Contains(strings.ToLower(string(f.Type)), q) ||
		strings.Contains(strings.ToLower(f.Title), q) ||
		strings.Contains(strings.ToLower(f.Location.String()), q) ||
		strings.Contains(strings.ToLower(string(f.Severity)), q)
}

func (m *Model) selected() *types.Finding {
	cur := m.tbl.Cursor()
	if cur < 0 || cur >= len(m.indices) {
		return nil
	}
	return &m.res.Findings[m.indices[cur]]
}

func (m *Model) refreshDetail() {
	f := m.selected()
	if f == nil {
		m.detail = "no finding selected"
		return
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		m.detail = err.Error()
		return
	}
	m.detail = highlightJSON(string(b))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.tbl.SetHeight(maxInt(msg.Height-8, 4))
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case rescanMsg:
		m.scanning = false
		if msg.err != nil {
			m.status = "rescan failed: " + msg.err.Error()
			return m, nil
		}
		m.res = msg.res
		m.rebuildRows()
		m.status = fmt.Sprintf("rescan done: %d findings", len(m.res.Findings))
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "enter":
				m.query = m.search.Value()
				m.search.Blur()
				m.rebuildRows()
				return m, nil
			case "esc":
				m.search.Blur()
				m.search.SetValue("")
				m.query = ""
				m.rebuildRows()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		return m, m.toggleFalsePositive()
	case "c":
		return m, m.copyEvidence()
	case "r":
		if m.rescan == nil || m.scanning {
			return m, nil
		}
		m.scanning = true
		m.status = "rescanning..."
		rescan := m.rescan
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			res, err := rescan()
			return rescanMsg{res: res, err: err}
		})
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	m.refreshDetail()
	return m, cmd
}

// toggleFalsePositive flips the selected finding and re-aggregates the
// summary so the score and grade track what the operator has triaged away.
func (m *Model) toggleFalsePositive() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	f.FalsePositive = !f.FalsePositive
	m.res.Summary = scoring.Aggregate(m.res.Findings)
	m.rebuildRows()
	state := "marked false positive"
	if !f.FalsePositive {
		state = "restored"
	}
	id := f.ID
	return func() tea.Msg { return statusMsg(fmt.Sprintf("%s %s", id, state)) }
}

func (m *Model) copyEvidence() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(string(f.Type) + "\n")
	sb.WriteString("location: " + f.Location.String() + "\n")
	if f.Evidence != "" {
		sb.WriteString("evidence: " + f.Evidence + "\n")
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		return func() tea.Msg { return statusMsg("clipboard unavailable: " + err.Error()) }
	}
	return func() tea.Msg { return statusMsg("copied finding to clipboard") }
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	var sb strings.Builder

	title := fmt.Sprintf("glasscan %s  score %.1f  grade %s  findings %d",
		m.res.Target, m.res.Summary.RiskScore, m.res.Summary.Grade, m.res.Summary.Total)
	if !m.res.CompletedAt.IsZero() {
		title += "  took " + formatDuration(m.res.CompletedAt.Sub(m.res.StartedAt))
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	if m.scanning {
		sb.WriteString(m.spinner.View() + " rescanning\n")
	}
	if m.search.Focused() {
		sb.WriteString(m.search.View() + "\n")
	}

	sb.WriteString(tableBorderStyle.Render(m.tbl.View()))
	sb.WriteString("\n")
	sb.WriteString(detailPaneBorderStyle.Width(maxInt(m.width-2, 20)).Render(truncateLines(m.detail, maxInt(m.height/3, 6))))
	sb.WriteString("\n")

	if m.showHelp {
		sb.WriteString(keyStyle.Render("q quit  / filter  f false-positive  c copy  r rescan  ? help"))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString(statusStyle.Render(" " + m.status + " "))
	}
	return sb.String()
}

func highlightJSON(src string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return src
	}
	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
