// Package quiz is the interactive quiz screen. It drives a surface built by
// the renderer and grades it with the scorer.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/render"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/scoring"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/results"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/surface"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// target is a focusable position: a control inside a block, or the submit
// button when block is -1.
type target struct {
	block   int
	control int
}

func (t target) isSubmit() bool { return t.block < 0 }

// QuizScreen renders every question at once and lets the user move between
// controls.
type QuizScreen struct {
	bank     qz.Bank
	attempts store.AttemptRepo
	renderer *render.Renderer
	surface  *surface.Surface
	results  *surface.Results
	scorer   *scoring.Scorer
	targets  []target
	cursor   int
	input    components.TextInput
	submit   components.Button
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for bank. attempts may be nil, in which case
// submissions are not recorded.
func New(bank qz.Bank, attempts store.AttemptRepo) *QuizScreen {
	s := &QuizScreen{
		bank:     bank,
		attempts: attempts,
		renderer: render.New(bank),
		surface:  surface.New(),
		results:  &surface.Results{},
	}
	s.scorer = scoring.New(bank, s.surface, s.results)
	s.submit = components.NewButton("Submit", s.submitCmd)
	s.rebuild()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.bank.Title()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓/Tab", Description: "Move"}}
	switch t := s.current(); {
	case t.isSubmit():
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	case s.control(t).Kind == surface.Text:
		hints = append(hints, layout.KeyHint{Key: "Type", Description: "Answer"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Select"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Surface exposes the quiz surface.
func (s *QuizScreen) Surface() *surface.Surface {
	return s.surface
}

// rebuild renders a fresh surface, discarding selections.
func (s *QuizScreen) rebuild() {
	s.renderer.Build(s.surface)
	s.results.SetText("")
	s.targets = s.targets[:0]
	for bi, b := range s.surface.Blocks() {
		for ci := range b.Controls {
			s.targets = append(s.targets, target{block: bi, control: ci})
		}
	}
	s.targets = append(s.targets, target{block: -1})
	s.cursor = 0
	s.focus()
}

func (s *QuizScreen) current() target {
	return s.targets[s.cursor]
}

func (s *QuizScreen) control(t target) *surface.Control {
	return s.surface.Blocks()[t.block].Controls[t.control]
}

// focus prepares the widgets for the target under the cursor.
func (s *QuizScreen) focus() {
	t := s.current()
	s.submit.Focused = t.isSubmit()
	if !t.isSubmit() {
		if c := s.control(t); c.Kind == surface.Text {
			s.input = components.NewTextInput("Type your answer", c.Value, 200)
		}
	}
}

func (s *QuizScreen) move(delta int) {
	s.cursor = (s.cursor + delta + len(s.targets)) % len(s.targets)
	s.focus()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case results.ReplayMsg:
		s.rebuild()
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	if t := s.current(); !t.isSubmit() && s.control(t).Kind == surface.Text {
		return s, s.typeInto(t, msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	t := s.current()
	switch msg.String() {
	case "up", "shift+tab":
		s.move(-1)
		return s, nil
	case "down", "tab":
		s.move(1)
		return s, nil
	}

	if t.isSubmit() {
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return s, cmd
	}

	c := s.control(t)
	switch {
	case c.Kind == surface.Text && msg.String() == "enter":
		s.move(1)
		return s, nil
	case c.Kind == surface.Text:
		return s, s.typeInto(t, msg)
	case msg.String() == "space" || msg.String() == "enter":
		s.activate(c)
	}
	return s, nil
}

func (s *QuizScreen) activate(c *surface.Control) {
	switch c.Kind {
	case surface.Radio:
		_ = s.surface.Select(c.Name, c.Value)
	case surface.Checkbox:
		_ = s.surface.Toggle(c.Name, c.Value)
	}
}

func (s *QuizScreen) typeInto(t target, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	c := s.control(t)
	_ = s.surface.SetText(c.Name, s.input.Value())
	return cmd
}

// submitCmd grades the surface, shows the results screen and records the
// attempt.
func (s *QuizScreen) submitCmd() tea.Cmd {
	res := s.scorer.Submit()
	next := results.New(s.bank, s.results.Text(), res)
	push := func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	if s.attempts == nil {
		return push
	}

	return tea.Sequence(push, s.recordCmd(res))
}

func (s *QuizScreen) recordCmd(res scoring.Result) tea.Cmd {
	attempts, title := s.attempts, s.bank.Title()
	return func() tea.Msg {
		id, err := attempts.AppendAttempt(context.Background(), store.AttemptData{
			BankTitle: title,
			Source:    store.SourceTerminal,
			Score:     res.Score,
			Total:     res.Total,
			Responses: res.Responses(),
		})
		return results.RecordedMsg{ID: id, Err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	cw := min(width-4, 76)
	var (
		lines      []string
		cursorLine int
	)
	add := func(str string) {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(str)))
	}

	cur := s.current()
	for bi, b := range s.surface.Blocks() {
		add(theme.Title.Render(fmt.Sprintf("%d. %s", b.Index+1, b.Prompt)))
		for ci, c := range b.Controls {
			focused := cur.block == bi && cur.control == ci
			if focused {
				cursorLine = len(lines)
			}
			add(s.controlLine(c, focused))
		}
		add("")
	}
	if cur.isSubmit() {
		cursorLine = len(lines)
	}
	add(s.submit.View())

	return strings.Join(window(lines, cursorLine, height), "\n")
}

func (s *QuizScreen) controlLine(c *surface.Control, focused bool) string {
	switch c.Kind {
	case surface.Radio:
		return components.Choice{Label: c.Value, Style: components.ChoiceRadio, Checked: c.Checked, Focused: focused}.View()
	case surface.Checkbox:
		return components.Choice{Label: c.Value, Style: components.ChoiceCheckbox, Checked: c.Checked, Focused: focused}.View()
	default:
		if focused {
			return theme.Focused.Render("▸ ") + s.input.View()
		}
		if c.Value == "" {
			return theme.Hint.Render("  ________")
		}
		return theme.Unfocused.Render("  " + c.Value)
	}
}

// window returns at most height lines with line at visible.
func window(lines []string, line, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := max(line-height/2, 0)
	start = min(start, len(lines)-height)
	return lines[start : start+height]
}
