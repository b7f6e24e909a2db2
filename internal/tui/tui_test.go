package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
)

// fakeFetcher serves pages of a fixed-size result set
type fakeFetcher struct {
	mu       sync.Mutex
	total    int
	err      error
	requests []viewer.Request
}

func (f *fakeFetcher) Fetch(ctx context.Context, req viewer.Request) viewer.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return viewer.Result{Generation: req.Generation, Err: f.err}
	}

	page := models.ResultPage{Rows: []models.Record{}, Total: f.total}
	for i := req.Query.Offset(); i < min(f.total, req.Query.Offset()+req.Query.PageSize); i++ {
		page.Rows = append(page.Rows, models.Record{Fields: []models.Field{
			{Name: "s_no", Value: i + 1},
			{Name: "college_name", Value: "College " + string(rune('A'+i%26))},
			{Name: "ews", Value: "No"},
		}})
	}
	return viewer.Result{Generation: req.Generation, Page: page}
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newModel(f *fakeFetcher) Model {
	return New(context.Background(), f, labels.NewFormatter(nil), zap.NewNop())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes a fetch command and feeds its result back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(fetchedMsg)
	require.True(t, ok, "expected a fetch command")
	m, _ = send(t, m, msg)
	return m
}

func typeScore(t *testing.T, m Model, score string) Model {
	t.Helper()
	for range 3 {
		m, _ = send(t, m, key("backspace"))
	}
	for _, r := range score {
		m, _ = send(t, m, key(string(r)))
	}
	return m
}

func TestFormStartsWithDefaults(t *testing.T) {
	m := newModel(&fakeFetcher{})
	view := m.View()
	assert.Contains(t, view, "ZeroToOne")
	assert.Contains(t, view, "565")
	assert.Contains(t, view, "[x] Male")
	assert.Contains(t, view, "[ ] Female")
	assert.Contains(t, view, "< OC >")
	assert.Contains(t, view, "All rights reserved for zerotoone.zerotoone@gmail.com")
}

func TestInvalidScoreBlocksSubmit(t *testing.T) {
	f := &fakeFetcher{}
	m := typeScore(t, newModel(f), "99")

	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, screenForm, m.screen)
	assert.Contains(t, m.View(), "Score must be between 100 and 720")
	assert.Zero(t, f.count())
}

func TestBlurValidatesScore(t *testing.T) {
	m := typeScore(t, newModel(&fakeFetcher{}), "800")
	assert.NotContains(t, m.View(), "Score must be between")

	m, _ = send(t, m, key("tab"))
	assert.Contains(t, m.View(), "Score must be between 100 and 720")
	assert.Equal(t, fieldGender, m.form.focus)
}

func TestToggleAndCycleFields(t *testing.T) {
	m := newModel(&fakeFetcher{})
	m, _ = send(t, m, key("tab")) // gender
	m, _ = send(t, m, key("right"))
	m, _ = send(t, m, key(" "))
	assert.Equal(t, []string{"Male", "Female"}, m.form.state.Gender.Values())

	m, _ = send(t, m, key(" "))
	assert.Equal(t, []string{"Male"}, m.form.state.Gender.Values(), "double toggle restores")

	m, _ = send(t, m, key("tab")) // category
	m, _ = send(t, m, key("right"))
	assert.Equal(t, "SC G-I", m.form.state.Category)
	m, _ = send(t, m, key("left"))
	m, _ = send(t, m, key("left"))
	assert.Equal(t, "BC-E", m.form.state.Category)

	for range 3 {
		m, _ = send(t, m, key("tab"))
	}
	assert.Equal(t, fieldAngloIndian, m.form.focus)
	m, _ = send(t, m, key(" "))
	assert.Equal(t, "Yes", m.form.state.AngloIndian)
}

func TestSubmitFetchesFirstPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newModel(f)

	m, cmd := send(t, m, key("enter"))
	assert.Equal(t, screenResults, m.screen)
	assert.Contains(t, m.View(), MsgLoading)

	m = run(t, m, cmd)
	require.Equal(t, 1, f.count())
	req := f.requests[0]
	assert.Equal(t, models.DefaultPageQuery(), req.Query)
	assert.Equal(t, 565, req.Criteria.Score)
	assert.Equal(t, []string{"Male"}, req.Criteria.Gender)
	assert.Equal(t, []string{"SVU"}, req.Criteria.Area)

	view := m.View()
	assert.Contains(t, view, "S. No")
	assert.Contains(t, view, "College Name")
	assert.Contains(t, view, "EWS")
	assert.Contains(t, view, "Students per page: 10")
}

func TestPagingAndRowNumbers(t *testing.T) {
	f := &fakeFetcher{total: 25}
	m := newModel(f)
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	m, cmd = send(t, m, key("right"))
	m = run(t, m, cmd)
	assert.Equal(t, 2, m.results.viewer.State().Query.PageNumber)
	assert.Equal(t, "11", m.results.table.Rows()[0][0])

	m, cmd = send(t, m, key("right"))
	m = run(t, m, cmd)
	assert.Len(t, m.results.table.Rows(), 5)
	assert.Equal(t, "25", m.results.table.Rows()[4][0])

	// Already on the last page
	_, cmd = send(t, m, key("right"))
	assert.Nil(t, cmd)
	assert.Equal(t, 3, f.count())
}

func TestPageSizeResetsToFirstPage(t *testing.T) {
	f := &fakeFetcher{total: 100}
	m := newModel(f)
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)
	m, cmd = send(t, m, key("right"))
	m = run(t, m, cmd)

	m, cmd = send(t, m, key("s"))
	m = run(t, m, cmd)

	st := m.results.viewer.State()
	assert.Equal(t, models.PageQuery{PageNumber: 1, PageSize: 20}, st.Query)
	assert.Contains(t, m.View(), "Students per page: 20")
}

func TestJumpToPage(t *testing.T) {
	f := &fakeFetcher{total: 250}
	m := newModel(f)
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	m, _ = send(t, m, key("g"))
	m, _ = send(t, m, key("1"))
	m, _ = send(t, m, key("3"))
	assert.Contains(t, m.View(), "Go to page:")
	m, cmd = send(t, m, key("enter"))
	m = run(t, m, cmd)

	assert.Equal(t, 13, m.results.viewer.State().Query.PageNumber)
	assert.Equal(t, "121", m.results.table.Rows()[0][0])
}

func TestStaleResultIsDiscarded(t *testing.T) {
	f := &fakeFetcher{total: 50}
	m := newModel(f)
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	m, stale := send(t, m, key("right"))
	m, fresh := send(t, m, key("right"))
	require.NotNil(t, stale)
	require.NotNil(t, fresh)

	m = run(t, m, fresh)
	assert.Equal(t, "21", m.results.table.Rows()[0][0])

	m = run(t, m, stale)
	assert.Equal(t, "21", m.results.table.Rows()[0][0], "older page must not overwrite newer state")
	assert.Equal(t, viewer.StatusReady, m.results.viewer.State().Status)
}

func TestFetchFailureAndRetry(t *testing.T) {
	f := &fakeFetcher{total: 5, err: errors.New("boom")}
	m := newModel(f)
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	assert.Contains(t, m.View(), MsgFetchFailed)
	assert.NotContains(t, m.View(), "S. No")

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()
	m, cmd = send(t, m, key("r"))
	m = run(t, m, cmd)
	assert.Equal(t, viewer.StatusReady, m.results.viewer.State().Status)
}

func TestEmptyResult(t *testing.T) {
	m := newModel(&fakeFetcher{total: 0})
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)
	assert.Contains(t, m.View(), MsgNoData)
}

func TestBackKeepsCriteria(t *testing.T) {
	m := newModel(&fakeFetcher{total: 5})
	m = typeScore(t, m, "612")
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, "612", m.form.score.Value())
	assert.True(t, strings.Contains(m.View(), "612"))
}

func TestQuitKeys(t *testing.T) {
	m := newModel(&fakeFetcher{})
	_, cmd := send(t, m, key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
