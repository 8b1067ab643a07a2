package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/launchdeck/internal/app"
	"github.com/thesavant42/launchdeck/internal/fetch"
	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/models"
)

// CatalogModel is the TUI model for browsing launches
type CatalogModel struct {
	state   *app.State
	logger  *log.Logger
	layout  Layout
	table   table.Model
	search  textinput.Model
	spinner spinner.Model
	detail  viewport.Model

	years   []string
	visible []models.Launch

	mode         catalogMode
	searchBefore string // search text to restore on esc
	detailID     string

	exportDir string
	statusMsg string
	quitting  bool

	now     func() time.Time
	openURL func(string) error
}

type catalogMode int

const (
	catalogModeList         catalogMode = iota // Table of launches
	catalogModeSearch                          // Search input focused
	catalogModeDetail                          // Detail overlay for one launch
	catalogModeConfirmClear                    // Confirm clearing all favorites
)

// Messages

type launchesLoadedMsg struct {
	result fetch.Result
}

type detailLoadedMsg struct {
	result fetch.DetailResult
}

// NewCatalogModel creates the catalog TUI over state
func NewCatalogModel(state *app.State, logger *log.Logger) CatalogModel {
	ti := textinput.New()
	ti.Placeholder = "Search missions..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.TextStyle = NormalStyle
	ti.PromptStyle = AccentStyle
	ti.SetValue(state.Filters.Search)

	layout := DefaultLayout()

	t := table.New(
		table.WithColumns(CalculateColumns(LaunchColumns(), layout.InnerWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)

	vp := viewport.New(layout.InnerWidth, layout.ViewportHeight-10)

	m := CatalogModel{
		state:   state,
		logger:  logger,
		layout:  layout,
		table:   t,
		search:  ti,
		spinner: NewAppSpinner(),
		detail:  vp,
		years:   filter.Years(time.Now()),
		mode:    catalogModeList,
		now:     time.Now,
		openURL: openURL,
	}
	m.refreshTable()
	return m
}

// Init implements tea.Model
func (m CatalogModel) Init() tea.Cmd {
	if m.state.Launches.Phase() == fetch.PhaseLoaded {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, m.fetchLaunches())
}

// Update implements tea.Model
func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		m.table.SetHeight(m.layout.TableHeight)
		m.table.SetColumns(CalculateColumns(LaunchColumns(), m.layout.InnerWidth))
		m.search.Width = m.layout.InnerWidth - 10
		m.detail.Width = m.layout.InnerWidth
		m.detail.Height = m.layout.ViewportHeight - 10
		m.refreshTable()
		m.syncDetail()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case launchesLoadedMsg:
		m.state.Launches.Resolve(msg.result)
		if msg.result.Err == nil {
			m.statusMsg = ""
		}
		m.refreshTable()
		m.syncDetail()
		return m, nil

	case detailLoadedMsg:
		m.state.Details.Resolve(msg.result)
		m.syncDetail()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m CatalogModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case catalogModeSearch:
		return m.handleSearchKeys(msg)
	case catalogModeDetail:
		return m.handleDetailKeys(msg)
	case catalogModeConfirmClear:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m CatalogModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		m.statusMsg = ""
		return m, m.fetchLaunches()

	case "/":
		m.mode = catalogModeSearch
		m.searchBefore = m.state.Filters.Search
		m.search.SetValue(m.state.Filters.Search)
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink

	case "y":
		m.state.Filters.CycleYear(m.years, 1)
		m.refreshTable()
		return m, nil

	case "Y":
		m.state.Filters.CycleYear(m.years, -1)
		m.refreshTable()
		return m, nil

	case "s":
		m.state.Filters.ToggleSuccessOnly()
		m.refreshTable()
		return m, nil

	case "f":
		m.state.Filters.ToggleFavoritesOnly()
		m.refreshTable()
		return m, nil

	case "c":
		m.state.ClearFilters()
		m.search.SetValue("")
		m.statusMsg = "Filters cleared"
		m.refreshTable()
		return m, nil

	case " ", "space":
		if l, ok := m.selected(); ok {
			if m.state.ToggleFavorite(l.ID) {
				m.statusMsg = fmt.Sprintf("Added %s to favorites", l.Name)
			} else {
				m.statusMsg = fmt.Sprintf("Removed %s from favorites", l.Name)
			}
			m.refreshTable()
		}
		return m, nil

	case "enter":
		if l, ok := m.selected(); ok {
			return m.openDetail(l.ID)
		}
		return m, nil

	case "e":
		if len(m.visible) == 0 {
			m.statusMsg = "Nothing to export"
			return m, nil
		}
		path, err := ExportLaunchesToMarkdown(m.exportDir, m.visible, m.state.Filters, m.state.Favorites.IDs(), m.now())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Export error: %v", err)
			if m.logger != nil {
				m.logger.Error("Export failed", "error", err)
			}
		} else {
			m.statusMsg = fmt.Sprintf("Exported %d launches to %s", len(m.visible), path)
		}
		return m, nil

	case "X":
		if m.state.Favorites.Len() == 0 {
			m.statusMsg = "No favorites to clear"
			return m, nil
		}
		m.mode = catalogModeConfirmClear
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CatalogModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = catalogModeList
		m.search.Blur()
		return m, nil

	case "esc":
		m.mode = catalogModeList
		m.search.Blur()
		m.search.SetValue(m.searchBefore)
		m.state.Filters.SetSearch(m.searchBefore)
		m.refreshTable()
		return m, nil
	}

	// Filter on every keystroke
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.Filters.SetSearch(sanitizeInput(m.search.Value()))
	m.refreshTable()
	return m, cmd
}

func (m CatalogModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		n := m.state.Favorites.Len()
		m.state.ClearFavorites()
		m.statusMsg = fmt.Sprintf("Cleared %d favorites", n)
		m.mode = catalogModeList
		m.refreshTable()
	case "n", "N", "esc", "q":
		m.statusMsg = ""
		m.mode = catalogModeList
	}
	return m, nil
}

// openDetail shows the list record at once and refreshes it with the
// populated record from the API.
func (m CatalogModel) openDetail(id string) (tea.Model, tea.Cmd) {
	m.mode = catalogModeDetail
	m.detailID = id
	m.statusMsg = ""
	m.detail.GotoTop()
	cmd := m.fetchDetail(id)
	m.syncDetail()
	return m, cmd
}

// View implements tea.Model
func (m CatalogModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ViewHeaderWithSubtitle("SpaceX Launches", m.lastUpdatedLabel(), m.layout.InnerWidth))

	if m.mode == catalogModeDetail {
		b.WriteString(m.detail.View())
		return BuildTwoBoxView(b.String(), m.getHelpText(), m.layout)
	}

	snap := m.state.Launches.Snapshot()
	switch {
	case snap.Data == nil && snap.Phase == fetch.PhaseFailed:
		b.WriteString(m.renderErrorView(snap.Err))
	case snap.Data == nil:
		b.WriteString(m.renderLoadingView())
	default:
		b.WriteString(m.renderTableView(snap))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render(" " + m.statusMsg))
	}

	return BuildTwoBoxView(b.String(), m.getHelpText(), m.layout)
}

func (m CatalogModel) renderLoadingView() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(CenterText(m.spinner.View()+" "+AccentStyle.Render("Loading launches..."), m.layout.InnerWidth))
	b.WriteString("\n")
	return b.String()
}

func (m CatalogModel) renderErrorView(message string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(CenterText(FailureStyle.Render("Houston, we have a problem!"), m.layout.InnerWidth))
	b.WriteString("\n\n")
	for _, line := range strings.Split(wrapWords(message, m.layout.InnerWidth-8), "\n") {
		b.WriteString(CenterText(NormalStyle.Render(strings.TrimRight(line, " ")), m.layout.InnerWidth))
		b.WriteString("\n")
	}
	if m.state.Launches.TimedOut() {
		b.WriteString("\n")
		b.WriteString(CenterText(DimStyle.Render("The API did not answer in time."), m.layout.InnerWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(CenterText(HintStyle.Render("Press r to try again"), m.layout.InnerWidth))
	b.WriteString("\n")
	return b.String()
}

func (m CatalogModel) renderTableView(snap fetch.Snapshot[[]models.Launch]) string {
	var b strings.Builder

	// Active filters
	labels := m.state.Filters.Labels()
	if len(labels) == 0 {
		b.WriteString(DimStyle.Render(" No filters active"))
	} else {
		b.WriteString(" ")
		for i, label := range labels {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(ChipStyle.Render(label))
		}
	}
	b.WriteString("\n")

	// Counts and fetch status
	counts := fmt.Sprintf(" Showing %d of %d launches  |  %d favorites", len(m.visible), len(snap.Data), m.state.Favorites.Len())
	b.WriteString(AccentStyle.Render(counts))
	switch snap.Phase {
	case fetch.PhaseLoading:
		b.WriteString("  " + m.spinner.View() + " " + DimStyle.Render("refreshing..."))
	case fetch.PhaseFailed:
		b.WriteString("  " + StatusMsgStyle.Render(truncate(snap.Err, m.layout.InnerWidth/2)))
	}
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		if m.state.Filters.Active() {
			b.WriteString(DimStyle.Render(" No launches match your filters. Press c to clear them."))
		} else {
			b.WriteString(DimStyle.Render(" No launches."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(RenderTableWithSelection(m.table, m.layout))
		b.WriteString("\n")
	}

	switch m.mode {
	case catalogModeSearch:
		b.WriteString("\n ")
		b.WriteString(m.search.View())
	case catalogModeConfirmClear:
		b.WriteString("\n ")
		b.WriteString(StatusMsgStyle.Render(fmt.Sprintf("Clear all %d favorites? (y/n)", m.state.Favorites.Len())))
	}

	return b.String()
}

func (m CatalogModel) getHelpText() string {
	switch m.mode {
	case catalogModeSearch:
		return "type to filter | Enter: keep | Esc: cancel"
	case catalogModeDetail:
		return "f: favorite | o: webcast | w: wikipedia | a: article | r: reload | up/down: scroll | Esc: close"
	case catalogModeConfirmClear:
		return "y: clear favorites | n: cancel"
	}
	if m.state.Launches.Phase() == fetch.PhaseFailed && m.state.Launches.Launches() == nil {
		return "r: retry | q: quit"
	}
	return "/: search | y/Y: year | s: successful | f: favorites | c: clear | space: star | Enter: details | r: refresh | e: export | X: clear stars | q: quit"
}

func (m CatalogModel) lastUpdatedLabel() string {
	t := m.state.Launches.LastUpdated()
	if t.IsZero() {
		return ""
	}
	return "Updated " + t.Local().Format("15:04:05")
}

// refreshTable recomputes the visible list and table rows
func (m *CatalogModel) refreshTable() {
	m.visible = m.state.Visible()

	columns := m.table.Columns()
	rows := make([]table.Row, len(m.visible))
	for i, l := range m.visible {
		rows[i] = launchRow(l, m.state.IsFavorite(l.ID), columns)
	}
	m.table.SetRows(rows)

	// An empty table leaves the cursor at -1
	if c := m.table.Cursor(); c < 0 || c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// syncDetail re-renders the detail overlay content
func (m *CatalogModel) syncDetail() {
	if m.mode != catalogModeDetail {
		return
	}
	m.detail.SetContent(m.renderDetail())
}

func (m CatalogModel) selected() (models.Launch, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return models.Launch{}, false
	}
	return m.visible[cursor], true
}

// Commands

func (m CatalogModel) fetchLaunches() tea.Cmd {
	ctrl := m.state.Launches
	req := ctrl.Begin()
	return func() tea.Msg {
		return launchesLoadedMsg{result: ctrl.Run(context.Background(), req)}
	}
}

func (m CatalogModel) fetchDetail(id string) tea.Cmd {
	ctrl := m.state.Details
	if ctrl == nil {
		return nil
	}
	req := ctrl.Begin(id)
	return func() tea.Msg {
		return detailLoadedMsg{result: ctrl.Run(context.Background(), req)}
	}
}

// RunCatalog starts the catalog TUI
func RunCatalog(state *app.State, logger *log.Logger, exportDir string) error {
	model := NewCatalogModel(state, logger)
	model.exportDir = exportDir

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("catalog TUI failed: %w", err)
	}
	return nil
}

// openURL opens a URL in the default browser (cross-platform)
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
