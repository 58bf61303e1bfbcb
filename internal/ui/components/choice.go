package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ChoiceStyle selects the marker drawn in front of an option.
type ChoiceStyle int

const (
	ChoiceRadio ChoiceStyle = iota
	ChoiceCheckbox
)

// Choice renders one selectable option line.
type Choice struct {
	Label   string
	Style   ChoiceStyle
	Checked bool
	Focused bool
}

// View renders the option with its marker, e.g. "▸ (•) Apple" or "  [ ] Carrot".
func (c Choice) View() string {
	var mark string
	switch c.Style {
	case ChoiceCheckbox:
		mark = "[ ]"
		if c.Checked {
			mark = "[x]"
		}
	default:
		mark = "( )"
		if c.Checked {
			mark = "(•)"
		}
	}

	prefix := "  "
	style := theme.Unfocused
	if c.Focused {
		prefix = "▸ "
		style = theme.Focused
	}
	line := prefix + mark + " " + c.Label
	if c.Checked && !c.Focused {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(line)
	}
	return style.Render(line)
}
