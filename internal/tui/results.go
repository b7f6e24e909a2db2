package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/pagination"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
)

// Result viewer messages
const (
	MsgLoading     = "Loading..."
	MsgFetchFailed = "Failed to fetch data"
	MsgNoData      = "No data found."
)

const maxColumnWidth = 30

// resultsModel is the result viewer screen
type resultsModel struct {
	viewer  *viewer.Viewer
	labels  *labels.Formatter
	table   table.Model
	jump    textinput.Model
	jumping bool
	height  int
	styles  Styles
}

func newResultsModel(formatter *labels.Formatter, styles Styles) resultsModel {
	ji := textinput.New()
	ji.Placeholder = "page"
	ji.CharLimit = 6
	ji.Width = 8

	return resultsModel{
		viewer: viewer.New(),
		labels: formatter,
		table:  table.New(table.WithFocused(true), table.WithHeight(12)),
		jump:   ji,
		height: 12,
		styles: styles,
	}
}

// mount starts a fresh viewer for criteria
func (m *resultsModel) mount(criteria models.FilterCriteria) *viewer.Request {
	m.viewer = viewer.New()
	m.jumping = false
	m.table.SetRows(nil)
	m.table.SetColumns(nil)
	return m.viewer.Mount(&criteria, models.DefaultPageQuery())
}

func (m *resultsModel) setHeight(h int) {
	if h > 3 {
		m.height = h
		m.table.SetHeight(h)
	}
}

// resolve applies a fetch result, reporting false when it was stale
func (m *resultsModel) resolve(res viewer.Result) bool {
	if !m.viewer.Resolve(res) {
		return false
	}
	m.refreshTable()
	return true
}

// update handles a key and returns the next fetch to issue, if any
func (m resultsModel) update(msg tea.Msg) (resultsModel, *viewer.Request, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, nil, cmd
	}

	if m.jumping {
		switch key.String() {
		case "enter":
			m.jumping = false
			m.jump.Blur()
			n, err := strconv.Atoi(m.jump.Value())
			m.jump.SetValue("")
			if err != nil {
				return m, nil, nil
			}
			return m, m.viewer.SetPage(n), nil
		case "esc":
			m.jumping = false
			m.jump.Blur()
			m.jump.SetValue("")
			return m, nil, nil
		}
		var cmd tea.Cmd
		m.jump, cmd = m.jump.Update(msg)
		return m, nil, cmd
	}

	switch key.String() {
	case "right", "n", "pgdown":
		return m, m.viewer.NextPage(), nil
	case "left", "p", "pgup":
		return m, m.viewer.PrevPage(), nil
	case "home":
		return m, m.viewer.SetPage(1), nil
	case "end":
		return m, m.viewer.SetPage(m.viewer.State().TotalPages()), nil
	case "s":
		return m, m.viewer.SetPageSize(nextPageSize(m.viewer.State().Query.PageSize)), nil
	case "r":
		return m, m.viewer.Retry(), nil
	case "g":
		m.jumping = true
		return m, nil, m.jump.Focus()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, nil, cmd
}

func nextPageSize(current int) int {
	i := slices.Index(models.PageSizeOptions, current)
	return models.PageSizeOptions[(i+1)%len(models.PageSizeOptions)]
}

func (m *resultsModel) refreshTable() {
	st := m.viewer.State()
	if st.Status != viewer.StatusReady {
		m.table.SetRows(nil)
		return
	}

	columns := st.Page.Columns()
	titles := append([]string{"S. No"}, m.labels.FormatAll(columns)...)

	rows := make([]table.Row, len(st.Page.Rows))
	for i, rec := range st.Page.Rows {
		row := make(table.Row, 0, len(titles))
		row = append(row, strconv.Itoa(st.Query.RowNumber(i)))
		for _, col := range columns {
			row = append(row, rec.Text(col))
		}
		rows[i] = row
	}

	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = utf8.RuneCountInString(title)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: min(widths[i], maxColumnWidth)}
	}

	// Rows must be cleared before the column count changes
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m resultsModel) view() string {
	st := m.viewer.State()

	var body string
	switch st.Status {
	case viewer.StatusLoading:
		body = MsgLoading
	case viewer.StatusError:
		body = m.styles.Error.Render(MsgFetchFailed) + "\n" + m.styles.Help.Render("press r to retry")
	case viewer.StatusEmpty:
		body = MsgNoData
	case viewer.StatusReady:
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if st.Status != viewer.StatusEmpty {
		b.WriteString(m.paginationView(st))
		b.WriteString("\n")
	}
	if m.jumping {
		b.WriteString("Go to page: " + m.jump.View() + "\n")
	}
	b.WriteString(m.styles.Help.Render("←/→ page • g go to page • s page size • r retry • esc back • q quit"))
	return b.String()
}

func (m resultsModel) paginationView(st viewer.State) string {
	items := pagination.Window(st.Query.PageNumber, st.TotalPages())
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Active {
			parts[i] = m.styles.ActivePage.Render(item.Label())
		} else {
			parts[i] = m.styles.Page.Render(item.Label())
		}
	}
	size := fmt.Sprintf("Students per page: %d", st.Query.PageSize)
	return lipgloss.JoinHorizontal(lipgloss.Top, size, "   ", strings.Join(parts, ""))
}
