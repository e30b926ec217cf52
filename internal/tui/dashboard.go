package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/report"
)

type dashboardModel struct {
	svc    *analytics.Service
	userID string
	window string
	width  int
	height int

	data    *analytics.Dashboard
	err     error
	loading bool
	vp      viewport.Model
}

func newDashboardModel(svc *analytics.Service, userID, window string) dashboardModel {
	return dashboardModel{
		svc:     svc,
		userID:  userID,
		window:  window,
		loading: true,
		vp:      viewport.New(0, 0),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.vp.Width = w
	d.vp.Height = max(h, 1)
	d.refreshContent()
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		dash, err := d.svc.Dashboard(context.Background(), d.userID, d.window)
		return dashboardDataMsg{dashboard: dash, err: err}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		if msg.err != nil {
			// The service has logged the cause; only the generic message
			// reaches the screen.
			d.err = msg.err
			d.data = nil
		} else {
			d.err = nil
			d.data = msg.dashboard
		}
		d.refreshContent()
		return d, nil

	case taskChangedMsg:
		d.loading = true
		return d, d.loadData()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			d.loading = true
			return d, d.loadData()
		}
	}

	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

func (d *dashboardModel) refreshContent() {
	d.vp.SetContent(d.render())
}

func (d dashboardModel) render() string {
	switch {
	case d.err != nil:
		return report.RenderError(d.err)
	case d.data == nil:
		return mutedStyle.Render("  Loading analytics...")
	}
	return report.Render(d.data, d.width)
}

func (d dashboardModel) view() string {
	return d.vp.View()
}
