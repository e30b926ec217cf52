package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/export"
	"github.com/sadopc/taskpulse/internal/repository"
	"github.com/sadopc/taskpulse/internal/search"
)

// Options wires the app to its data.
type Options struct {
	Repo      *repository.Repository
	Analytics *analytics.Service
	Clock     calendar.Clock
	UserID    string
	// Window is the label the dashboard summary is computed for.
	Window       string
	SearchDelay  time.Duration
	SearchSettle time.Duration
	// ExportDir defaults to the home directory.
	ExportDir string
	Logger    zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	opts   Options
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tasks     tasksModel
	search    searchModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(opts Options) (App, error) {
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.Window == "" {
		opts.Window = analytics.DefaultWindow
	}

	sm, err := newSearchModel(opts.Repo, opts.Clock, opts.UserID, search.Options{
		Delay:  opts.SearchDelay,
		Settle: opts.SearchSettle,
		Logger: opts.Logger,
	})
	if err != nil {
		return App{}, err
	}

	h := help.New()
	h.ShowAll = false

	return App{
		opts:       opts,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(opts.Analytics, opts.UserID, opts.Window),
		tasks:      newTasksModel(opts.Repo, opts.Clock, opts.UserID),
		search:     sm,
		help:       h,
	}, nil
}

// Close stops pending search timers.
func (a App) Close() {
	a.search.close()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.tasks.refresh(),
		a.search.Init(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.search.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The search box and the task form capture every key except a few.
		if a.capturingInput() {
			switch {
			case msg.String() == "ctrl+c":
				return a, tea.Quit
			case a.activeView == viewSearch && key.Matches(msg, keys.Tab):
				return a.switchView(viewDashboard)
			case a.activeView == viewSearch && key.Matches(msg, keys.Back):
				return a.switchView(viewTasks)
			}
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab3), key.Matches(msg, keys.Search):
			return a.switchView(viewSearch)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case tasksDataMsg:
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		return a, cmd

	case navigationMsg, searchResultsMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.update(msg)
		return a, cmd

	case taskChangedMsg:
		// Every view shows task data, so all of them reload.
		a.status, a.isError = msg.text, false
		var c1, c2, c3 tea.Cmd
		a.dashboard, c1 = a.dashboard.update(msg)
		a.tasks, c2 = a.tasks.update(msg)
		a.search, c3 = a.search.update(msg)
		return a, tea.Batch(c1, c2, c3)

	case statusMsg:
		a.status, a.isError = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.isError = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	if v == viewSearch {
		cmd := a.search.focus()
		return a, cmd
	}
	a.search.blur()
	switch v {
	case viewDashboard:
		return a, a.dashboard.loadData()
	case viewTasks:
		return a, a.tasks.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewSearch:
		a.search, cmd = a.search.update(msg)
	}
	return a, cmd
}

func (a App) capturingInput() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSearch:
		return true
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewSearch:
		content = a.search.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Render("taskpulse") + subtitleStyle.Render(" "+a.opts.UserID)
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Analytics"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the current dashboard. It is recomputed so the file
// matches the data at export time.
func (a App) doExport(format int) tea.Cmd {
	opts := a.opts
	return func() tea.Msg {
		d, err := opts.Analytics.Dashboard(context.Background(), opts.UserID, opts.Window)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}

		dir := opts.ExportDir
		if dir == "" {
			dir, _ = os.UserHomeDir()
		}
		name := "taskpulse-analytics-" + opts.Clock.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(dir, name+".csv")
			if err := export.ToCSV(d, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, name+".json")
			if err := export.ToJSON(d, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}
