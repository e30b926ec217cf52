package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/repository"
	"github.com/sadopc/taskpulse/internal/search"
	"github.com/sadopc/taskpulse/internal/task"
)

// navigationChannel hands dispatched searches to the Bubble Tea loop. Only
// the newest navigation is kept.
type navigationChannel chan search.Navigation

func (ch navigationChannel) Navigate(n search.Navigation) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- n:
	default:
	}
}

func waitForNavigation(ch navigationChannel) tea.Cmd {
	return func() tea.Msg {
		return navigationMsg(<-ch)
	}
}

type searchModel struct {
	repo       *repository.Repository
	clock      calendar.Clock
	userID     string
	dispatcher *search.Dispatcher
	nav        navigationChannel
	log        zerolog.Logger
	width      int
	height     int

	input   textinput.Model
	spinner spinner.Model

	term    string
	loading bool
	tasks   []task.Task
	cursor  int
	err     error
}

func newSearchModel(repo *repository.Repository, clock calendar.Clock, userID string, opts search.Options) (searchModel, error) {
	nav := make(navigationChannel, 1)
	d, err := search.NewDispatcher(userID, nav, opts)
	if err != nil {
		return searchModel{}, err
	}

	in := textinput.New()
	in.Placeholder = "Search tasks..."
	in.Prompt = "/ "
	in.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = highlightStyle

	return searchModel{
		repo:       repo,
		clock:      clock,
		userID:     userID,
		dispatcher: d,
		nav:        nav,
		log:        opts.Logger,
		input:      in,
		spinner:    sp,
		term:       opts.Initial,
	}, nil
}

func (s searchModel) Init() tea.Cmd {
	return tea.Batch(waitForNavigation(s.nav), s.spinner.Tick)
}

func (s *searchModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.input.Width = max(w-12, 10)
}

func (s *searchModel) focus() tea.Cmd {
	return s.input.Focus()
}

func (s *searchModel) blur() {
	s.input.Blur()
}

func (s searchModel) close() {
	s.dispatcher.Close()
}

func (s searchModel) load(n search.Navigation) tea.Cmd {
	return func() tea.Msg {
		tasks, err := s.repo.QueryTasks(context.Background(), n.Query)
		return searchResultsMsg{term: n.Term, tasks: tasks, err: err}
	}
}

func (s searchModel) update(msg tea.Msg) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case navigationMsg:
		s.term = msg.Term
		s.loading = true
		s.log.Debug().Str("term", msg.Term).Msg("search dispatched")
		return s, tea.Batch(s.load(search.Navigation(msg)), waitForNavigation(s.nav))

	case searchResultsMsg:
		if msg.term != s.term {
			return s, nil
		}
		s.loading = false
		s.err = msg.err
		s.tasks = msg.tasks
		s.cursor = 0
		return s, nil

	case taskChangedMsg:
		if s.term == "" && s.tasks == nil {
			return s, nil
		}
		return s, s.reload()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		case "down", "ctrl+n":
			if s.cursor < len(s.tasks)-1 {
				s.cursor++
			}
			return s, nil
		}

		var cmd tea.Cmd
		before := s.input.Value()
		s.input, cmd = s.input.Update(msg)
		if v := s.input.Value(); v != before {
			s.dispatcher.Request(v)
		}
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// reload re-runs the last dispatched search after a task changed.
func (s searchModel) reload() tea.Cmd {
	term := s.term
	return func() tea.Msg {
		tasks, err := s.repo.SearchTasks(context.Background(), s.userID, term)
		return searchResultsMsg{term: term, tasks: tasks, err: err}
	}
}

func (s searchModel) view() string {
	status := ""
	switch {
	case s.dispatcher.Pending():
		status = s.spinner.View() + mutedStyle.Render(" waiting for input")
	case s.loading:
		status = s.spinner.View() + mutedStyle.Render(" searching")
	case s.dispatcher.Settling():
		status = mutedStyle.Render("● settling")
	case s.term != "":
		status = mutedStyle.Render(fmt.Sprintf("%d matches for %q", len(s.tasks), s.term))
	}

	rows := []string{s.input.View(), status, ""}
	switch {
	case s.err != nil:
		rows = append(rows, errorStyle.Render("  "+s.err.Error()))
	case s.tasks == nil && s.term == "" && !s.loading:
		rows = append(rows, mutedStyle.Render("  Type to search your tasks."))
	case len(s.tasks) == 0 && !s.loading:
		rows = append(rows, mutedStyle.Render("  No tasks match."))
	default:
		rows = append(rows, renderTaskList(s.tasks, s.cursor, s.clock.Now(), s.width, s.height-6)...)
	}
	return panelStyle.Width(max(s.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
