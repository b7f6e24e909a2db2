package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nakkarenukadevi/mbbs-ui/internal/form"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

type field int

const (
	fieldScore field = iota
	fieldGender
	fieldCategory
	fieldArea
	fieldMuslimMinority
	fieldAngloIndian
	fieldPMC
	fieldEWS
	fieldSubmit
	fieldCount
)

var fieldLabels = map[field]string{
	fieldScore:          "Score",
	fieldGender:         "Gender",
	fieldCategory:       "Category",
	fieldArea:           "Area",
	fieldMuslimMinority: "Muslim Minority",
	fieldAngloIndian:    "Anglo Indian",
	fieldPMC:            "PMC",
	fieldEWS:            "EWS",
}

// formModel is the query builder screen
type formModel struct {
	state  *form.State
	score  textinput.Model
	focus  field
	cursor map[field]int // option cursor of the multi-selects
	styles Styles
}

func newFormModel(state *form.State, styles Styles) formModel {
	ti := textinput.New()
	ti.Placeholder = "100 - 720"
	ti.CharLimit = 8
	ti.Width = 10
	ti.SetValue(state.Score)
	ti.Focus()

	return formModel{
		state:  state,
		score:  ti,
		focus:  fieldScore,
		cursor: map[field]int{fieldGender: 0, fieldArea: 0},
		styles: styles,
	}
}

// update handles a message. It returns the submitted criteria once the
// form passes validation.
func (m formModel) update(msg tea.Msg) (formModel, *models.FilterCriteria, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.score, cmd = m.score.Update(msg)
		return m, nil, cmd
	}

	switch key.String() {
	case "tab", "down":
		m.move(1)
		return m, nil, nil
	case "shift+tab", "up":
		m.move(-1)
		return m, nil, nil
	case "enter":
		m.state.Score = m.score.Value()
		criteria, err := m.state.Submit()
		if err != nil {
			if m.state.Error != "" && m.focus != fieldScore {
				m.setFocus(fieldScore)
			}
			return m, nil, nil
		}
		return m, &criteria, nil
	}

	switch m.focus {
	case fieldScore:
		var cmd tea.Cmd
		m.score, cmd = m.score.Update(msg)
		m.state.Score = m.score.Value()
		return m, nil, cmd
	case fieldGender:
		m.updateSelection(key, m.state.Gender)
	case fieldArea:
		m.updateSelection(key, m.state.Area)
	case fieldCategory:
		m.state.Category = cycleKey(key, models.CategoryOptions, m.state.Category)
	case fieldMuslimMinority:
		m.state.MuslimMinority = cycleKey(key, models.FlagOptions, m.state.MuslimMinority)
	case fieldAngloIndian:
		m.state.AngloIndian = cycleKey(key, models.FlagOptions, m.state.AngloIndian)
	case fieldPMC:
		m.state.PMC = cycleKey(key, models.FlagOptions, m.state.PMC)
	case fieldEWS:
		m.state.EWS = cycleKey(key, models.FlagOptions, m.state.EWS)
	}
	return m, nil, nil
}

func (m *formModel) updateSelection(key tea.KeyMsg, sel *form.Selection) {
	n := len(sel.Options())
	switch key.String() {
	case "left", "h":
		m.cursor[m.focus] = (m.cursor[m.focus] + n - 1) % n
	case "right", "l":
		m.cursor[m.focus] = (m.cursor[m.focus] + 1) % n
	case " ", "space", "x":
		sel.Toggle(sel.Options()[m.cursor[m.focus]])
	}
}

// move shifts focus, validating the score when focus leaves it
func (m *formModel) move(delta int) {
	next := (int(m.focus) + delta + int(fieldCount)) % int(fieldCount)
	m.setFocus(field(next))
}

func (m *formModel) setFocus(f field) {
	if m.focus == fieldScore && f != fieldScore {
		m.state.Score = m.score.Value()
		m.state.Blur()
		m.score.Blur()
	}
	if f == fieldScore {
		m.score.Focus()
	}
	m.focus = f
}

// cycleKey steps a single-choice value with left/right or space
func cycleKey(key tea.KeyMsg, options []string, current string) string {
	switch key.String() {
	case "left", "h":
		return cycle(options, current, -1)
	case "right", "l", " ", "space":
		return cycle(options, current, 1)
	}
	return current
}

func cycle(options []string, current string, delta int) string {
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[(i+delta+n)%n]
}

func (m formModel) view() string {
	var b strings.Builder

	for f := fieldScore; f < fieldSubmit; f++ {
		b.WriteString(m.marker(f))
		b.WriteString(m.styles.Label.Render(fieldLabels[f] + ":"))

		switch f {
		case fieldScore:
			b.WriteString(m.score.View())
			if m.state.Error != "" {
				b.WriteString("  " + m.styles.Error.Render(m.state.Error))
			}
		case fieldGender:
			b.WriteString(m.selectionView(f, m.state.Gender))
		case fieldArea:
			b.WriteString(m.selectionView(f, m.state.Area))
		case fieldCategory:
			b.WriteString("< " + m.state.Category + " >")
		case fieldMuslimMinority:
			b.WriteString("< " + m.state.MuslimMinority + " >")
		case fieldAngloIndian:
			b.WriteString("< " + m.state.AngloIndian + " >")
		case fieldPMC:
			b.WriteString("< " + m.state.PMC + " >")
		case fieldEWS:
			b.WriteString("< " + m.state.EWS + " >")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.marker(fieldSubmit))
	if m.focus == fieldSubmit {
		b.WriteString(m.styles.Focused.Render("[ Submit ]"))
	} else {
		b.WriteString("[ Submit ]")
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("tab/↓ next • shift+tab/↑ previous • ←/→ change • space toggle • enter submit • esc quit"))
	return b.String()
}

func (m formModel) marker(f field) string {
	if m.focus == f {
		return m.styles.Focused.Render("> ")
	}
	return "  "
}

func (m formModel) selectionView(f field, sel *form.Selection) string {
	parts := make([]string, 0, len(sel.Options()))
	for i, option := range sel.Options() {
		box := "[ ]"
		if sel.Has(option) {
			box = "[x]"
		}
		item := fmt.Sprintf("%s %s", box, option)
		if sel.Has(option) {
			item = m.styles.Selected.Render(item)
		}
		if m.focus == f && m.cursor[f] == i {
			item = m.styles.Focused.Render("›") + item
		} else {
			item = " " + item
		}
		parts = append(parts, item)
	}
	return strings.Join(parts, "  ")
}
