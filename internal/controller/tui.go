package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63"))
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a Bubble Tea browser over the campaign's cases.
// Cases are collected as they are displayed and browsed once Wait is called.
type TUI struct {
	output  io.Writer
	config  StartConfig
	info    SessionInfo
	cases   []m.Case
	summary *m.Summary
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.config = newStartConfig(options)
	t.cases = nil
	t.summary = nil

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close(_ context.Context) {}

// DisplaySessionInfo records the campaign parameters for the header.
func (t *TUI) DisplaySessionInfo(_ context.Context, info SessionInfo) {
	t.info = info
}

// DisplayCase queues a case for browsing.
func (t *TUI) DisplayCase(ctx context.Context, result m.Case) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.cases = append(t.cases, result)

	return nil
}

// DisplaySummary records the campaign summary for the footer.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.summary = &summary
}

// Wait runs the browser until the user quits.
func (t *TUI) Wait(ctx context.Context) {
	model := newCaseBrowserModel(t.config.mode, t.info, t.cases, t.summary)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		slog.Error("TUI failed", "error", err)
	}
}

// caseBrowserModel lists cases in a table; enter opens the selected case.
type caseBrowserModel struct {
	mode     StartMode
	info     SessionInfo
	cases    []m.Case
	summary  *m.Summary
	table    table.Model
	detail   bool
	offset   int
	width    int
	height   int
	quitting bool
}

func newCaseBrowserModel(mode StartMode, info SessionInfo, cases []m.Case, summary *m.Summary) caseBrowserModel {
	rows := make([]table.Row, 0, len(cases))
	for _, result := range cases {
		rows = append(rows, caseRow(result))
	}

	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Seed", Width: 12},
		{Title: "Edits", Width: 6},
		{Title: "Fields", Width: 48},
	}

	caseTable := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	caseTable.SetStyles(styles)

	return caseBrowserModel{
		mode:    mode,
		info:    info,
		cases:   cases,
		summary: summary,
		table:   caseTable,
	}
}

func caseRow(result m.Case) table.Row {
	seen := map[string]bool{}
	fields := make([]string, 0, len(result.Log))

	for _, record := range result.Log {
		if !seen[record.Field] {
			seen[record.Field] = true
			fields = append(fields, record.Field)
		}
	}

	return table.Row{
		fmt.Sprintf("%d", result.Index),
		fmt.Sprintf("%d", result.Seed),
		fmt.Sprintf("%d", len(result.Log)),
		truncate(strings.Join(fields, ", "), 48),
	}
}

func (cbm caseBrowserModel) resize(width, height int) caseBrowserModel {
	cbm.width = width
	cbm.height = height

	// header box, subtitle, summary and help lines
	reserved := 9
	if height-reserved > 1 {
		cbm.table.SetHeight(height - reserved)
	}

	return cbm
}

func (cbm caseBrowserModel) Init() tea.Cmd {
	return nil
}

func (cbm caseBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return cbm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return cbm.handleKeyPress(msg)
	}

	return cbm, nil
}

func (cbm caseBrowserModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		cbm.quitting = true
		return cbm, tea.Quit

	case "esc":
		if !cbm.detail {
			cbm.quitting = true
			return cbm, tea.Quit
		}

		cbm.detail = false

		return cbm, nil

	case "enter":
		if len(cbm.cases) > 0 {
			cbm.detail = !cbm.detail
			cbm.offset = 0
		}

		return cbm, nil
	}

	if cbm.detail {
		return cbm.scrollDetail(msg.String()), nil
	}

	var cmd tea.Cmd
	cbm.table, cmd = cbm.table.Update(msg)

	return cbm, cmd
}

func (cbm caseBrowserModel) scrollDetail(key string) caseBrowserModel {
	switch key {
	case "down", "j":
		cbm.offset++
	case "up", "k":
		cbm.offset--
	case "g", "home":
		cbm.offset = 0
	case "G", "end":
		cbm.offset = len(cbm.detailLines())
	}

	maxOffset := len(cbm.detailLines()) - cbm.detailHeight()
	if cbm.offset > maxOffset {
		cbm.offset = maxOffset
	}

	if cbm.offset < 0 {
		cbm.offset = 0
	}

	return cbm
}

func (cbm caseBrowserModel) detailHeight() int {
	if cbm.height == 0 {
		return 20
	}

	if available := cbm.height - 6; available > 1 {
		return available
	}

	return 1
}

func (cbm caseBrowserModel) selected() (m.Case, bool) {
	cursor := cbm.table.Cursor()
	if cursor < 0 || cursor >= len(cbm.cases) {
		return m.Case{}, false
	}

	return cbm.cases[cursor], true
}

func (cbm caseBrowserModel) detailLines() []string {
	result, ok := cbm.selected()
	if !ok {
		return nil
	}

	var b strings.Builder

	b.WriteString(renderLogTable(result.Log))
	b.WriteString("\n")

	if result.Generated() || cbm.mode == ModeGenerate {
		b.WriteString(indentJSON(result.Resource))
	} else if diff, err := renderDiff(result.Original, result.Resource); err == nil {
		b.WriteString(diff)
	}

	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func (cbm caseBrowserModel) View() string {
	if cbm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("fhirfuzz - %s %s", cbm.mode, cbm.info.Kind)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d case(s), seed %d", len(cbm.cases), cbm.info.Seed)))
	b.WriteString("\n\n")

	if len(cbm.cases) == 0 {
		b.WriteString("  No cases\n")
		return b.String()
	}

	if cbm.detail {
		cbm.renderDetail(&b)
		return b.String()
	}

	b.WriteString(cbm.table.View())
	b.WriteString("\n")

	if cbm.summary != nil {
		fmt.Fprintf(&b, "\n  %d edit(s) across %d field(s)\n", cbm.summary.Mutations, len(cbm.summary.Fields))
	}

	b.WriteString(helpStyle.Render("  ↑/↓ select • enter open • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (cbm caseBrowserModel) renderDetail(b *strings.Builder) {
	result, _ := cbm.selected()
	lines := cbm.detailLines()

	end := cbm.offset + cbm.detailHeight()
	if end > len(lines) {
		end = len(lines)
	}

	fmt.Fprintf(b, "  Case %d (seed %d)\n\n", result.Index, result.Seed)

	for _, line := range lines[cbm.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("  ↑/↓ scroll • esc back • q quit"))
	b.WriteString("\n")
}
