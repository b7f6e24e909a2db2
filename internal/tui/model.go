package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/form"
	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
)

// Fetcher performs result viewer requests
type Fetcher interface {
	Fetch(ctx context.Context, req viewer.Request) viewer.Result
}

type screen int

const (
	screenForm screen = iota
	screenResults
)

// fetchedMsg carries a fetch result back into the program
type fetchedMsg viewer.Result

// chrome is the height taken by header, footer and help lines
const chrome = 10

// Model is the root bubbletea model
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	log     *zap.Logger

	screen  screen
	form    formModel
	results resultsModel
	cancel  context.CancelFunc // cancels the fetch in flight

	width  int
	styles Styles
}

// New creates the program model. ctx bounds every fetch.
func New(ctx context.Context, fetcher Fetcher, formatter *labels.Formatter, log *zap.Logger) Model {
	styles := DefaultStyles()
	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		log:     log,
		screen:  screenForm,
		form:    newFormModel(form.NewState(), styles),
		results: newResultsModel(formatter, styles),
		styles:  styles,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.results.setHeight(msg.Height - chrome)
		return m, nil

	case fetchedMsg:
		if !m.results.resolve(viewer.Result(msg)) {
			m.log.Debug("Discarded stale result", zap.Uint64("generation", msg.Generation))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			if m.screen == screenForm {
				return m.quit()
			}
			if !m.results.jumping {
				return m.back(), nil
			}
		case "q":
			if m.screen == screenResults && !m.results.jumping {
				return m.quit()
			}
		}
	}

	switch m.screen {
	case screenForm:
		var criteria *models.FilterCriteria
		var cmd tea.Cmd
		m.form, criteria, cmd = m.form.update(msg)
		if criteria == nil {
			return m, cmd
		}
		m.screen = screenResults
		fetch := m.fetch(m.results.mount(*criteria))
		return m, fetch

	default:
		var req *viewer.Request
		var cmd tea.Cmd
		m.results, req, cmd = m.results.update(msg)
		if req != nil {
			fetch := m.fetch(req)
			return m, fetch
		}
		return m, cmd
	}
}

// back returns to the query builder, prefilled with the current criteria
func (m Model) back() Model {
	m.stopFetch()
	m.form = newFormModel(form.FromCriteria(m.results.viewer.State().Criteria), m.styles)
	m.screen = screenForm
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stopFetch()
	return m, tea.Quit
}

// fetch issues req, cancelling the request it supersedes
func (m *Model) fetch(req *viewer.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	m.stopFetch()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	fetcher := m.fetcher
	r := *req
	return func() tea.Msg {
		return fetchedMsg(fetcher.Fetch(ctx, r))
	}
}

func (m *Model) stopFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// View renders the model.
func (m Model) View() string {
	header := m.styles.Header.Render("ZeroToOne")
	footer := m.styles.Footer.Render("All rights reserved for zerotoone.zerotoone@gmail.com")

	var body string
	if m.screen == screenForm {
		body = m.form.view()
	} else {
		body = m.results.view()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}
