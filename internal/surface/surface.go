// Package surface models the rendered quiz: blocks of named input controls
// that a user fills in, and the results area that shows the score.
package surface

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrNoControl is returned when no control matches a group name and value.
	ErrNoControl = errors.New("no such control")

	// ErrWrongKind is returned when an operation does not apply to the
	// kind of control in a group.
	ErrWrongKind = errors.New("wrong control kind")
)

// ControlKind is the type of an input control.
type ControlKind int

const (
	Radio ControlKind = iota
	Checkbox
	Text
)

func (k ControlKind) String() string {
	switch k {
	case Radio:
		return "radio"
	case Checkbox:
		return "checkbox"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
}

// Control is one input. Controls sharing a Name form a group. For radio and
// checkbox controls Value is fixed and Checked carries the selection; for
// text controls Value is what the user typed.
type Control struct {
	Kind    ControlKind
	Name    string
	Value   string
	Checked bool
}

// Block is the rendered form of one question.
type Block struct {
	Index    int
	Prompt   string
	Controls []*Control
}

// Name returns the group name shared by the block's controls.
func (b *Block) Name() string {
	if len(b.Controls) == 0 {
		return ""
	}
	return b.Controls[0].Name
}

// Surface is the quiz input surface. It is not safe for concurrent use.
type Surface struct {
	blocks []*Block
	groups map[string][]*Control
}

// New returns an empty surface.
func New() *Surface {
	return &Surface{groups: make(map[string][]*Control)}
}

// Reset removes every block.
func (s *Surface) Reset() {
	s.blocks = nil
	s.groups = make(map[string][]*Control)
}

// AddBlock appends a block and indexes its controls by name.
func (s *Surface) AddBlock(b Block) {
	if s.groups == nil {
		s.groups = make(map[string][]*Control)
	}
	block := &b
	s.blocks = append(s.blocks, block)
	for _, c := range block.Controls {
		s.groups[c.Name] = append(s.groups[c.Name], c)
	}
}

// Blocks returns the blocks in render order.
func (s *Surface) Blocks() []*Block {
	return s.blocks
}

// Controls returns every control named name, in render order.
func (s *Surface) Controls(name string) []*Control {
	return s.groups[name]
}

// Has reports whether a group named name exists.
func (s *Surface) Has(name string) bool {
	return len(s.groups[name]) > 0
}

// Checked returns the value of the first checked control in the group.
// ok is false when nothing in the group is checked or the group is missing.
func (s *Surface) Checked(name string) (value string, ok bool) {
	for _, c := range s.groups[name] {
		if c.Kind != Text && c.Checked {
			return c.Value, true
		}
	}
	return "", false
}

// CheckedValues returns the values of every checked control in the group.
func (s *Surface) CheckedValues(name string) []string {
	var out []string
	for _, c := range s.groups[name] {
		if c.Kind != Text && c.Checked {
			out = append(out, c.Value)
		}
	}
	return out
}

// Text returns the value of the first text control in the group.
func (s *Surface) Text(name string) (string, bool) {
	for _, c := range s.groups[name] {
		if c.Kind == Text {
			return c.Value, true
		}
	}
	return "", false
}

// Select checks the radio control with the given value and unchecks the
// rest of its group.
func (s *Surface) Select(name, value string) error {
	target, err := s.find(name, value, Radio)
	if err != nil {
		return err
	}
	for _, c := range s.groups[name] {
		if c.Kind == Radio {
			c.Checked = false
		}
	}
	target.Checked = true
	return nil
}

// Toggle flips the checkbox control with the given value.
func (s *Surface) Toggle(name, value string) error {
	target, err := s.find(name, value, Checkbox)
	if err != nil {
		return err
	}
	target.Checked = !target.Checked
	return nil
}

// SetText sets the value of the text control in the group.
func (s *Surface) SetText(name, text string) error {
	group := s.groups[name]
	if len(group) == 0 {
		return fmt.Errorf("%w: %s", ErrNoControl, name)
	}
	for _, c := range group {
		if c.Kind == Text {
			c.Value = text
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a text group", ErrWrongKind, name)
}

// ClearSelections unchecks every control and empties every text control.
func (s *Surface) ClearSelections() {
	for _, b := range s.blocks {
		for _, c := range b.Controls {
			switch c.Kind {
			case Text:
				c.Value = ""
			default:
				c.Checked = false
			}
		}
	}
}

// ApplyForm replaces the current selections with a submitted form. Only
// values that match a rendered control take effect. A text field takes the
// first submitted value, even when it is empty; a radio group takes the
// first value that matches one of its options.
func (s *Surface) ApplyForm(form url.Values) {
	s.ClearSelections()
	for name, values := range form {
		group := s.groups[name]
		if len(group) == 0 || len(values) == 0 {
			continue
		}
		if group[0].Kind == Text {
			group[0].Value = values[0]
			continue
		}
		for _, v := range values {
			s.applyValue(group, name, v)
		}
	}
}

func (s *Surface) applyValue(group []*Control, name, value string) {
	for _, c := range group {
		switch c.Kind {
		case Radio:
			if c.Value == value {
				if _, taken := s.Checked(name); !taken {
					c.Checked = true
				}
				return
			}
		case Checkbox:
			if c.Value == value {
				c.Checked = true
				return
			}
		}
	}
}

func (s *Surface) find(name, value string, kind ControlKind) (*Control, error) {
	group := s.groups[name]
	if len(group) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoControl, name)
	}
	for _, c := range group {
		if c.Value != value {
			continue
		}
		if c.Kind != kind {
			return nil, fmt.Errorf("%w: %s is a %s group", ErrWrongKind, name, c.Kind)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s=%q", ErrNoControl, name, value)
}

// Results is the results surface that shows the score summary.
type Results struct {
	text string
}

// SetText replaces the results text.
func (r *Results) SetText(text string) { r.text = text }

// Text returns the current results text.
func (r *Results) Text() string { return r.text }
