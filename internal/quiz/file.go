package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileVersion is the only bank file version this package reads and writes.
const FileVersion = 1

// TypeTrueFalse is accepted in bank files as shorthand for a single-choice
// question with the options "True" and "False".
const TypeTrueFalse = "true_false"

// File is the on-disk representation of a bank.
type File struct {
	Version   int      `json:"version" yaml:"version"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Questions []Record `json:"questions" yaml:"questions"`
}

// Record is one question in a bank file.
type Record struct {
	Type    string   `json:"type" yaml:"type"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer  Answer   `json:"answer" yaml:"answer"`
	Accept  []string `json:"accept,omitempty" yaml:"accept,omitempty"`
}

// Answer holds the "answer" field, which is a scalar for single, fill and
// true_false questions and a list for multi questions.
type Answer struct {
	Values []string
	List   bool
}

// Scalar returns the answer as a single string, or "" when it is a list.
func (a Answer) Scalar() string {
	if a.List || len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.List {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Scalar())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		*a = Answer{Values: values, List: true}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	switch v := raw.(type) {
	case string:
		*a = Answer{Values: []string{v}}
	case bool:
		*a = Answer{Values: []string{strconv.FormatBool(v)}}
	case float64:
		*a = Answer{Values: []string{string(data)}}
	default:
		return fmt.Errorf("answer: unsupported value %s", data)
	}
	return nil
}

func (a Answer) MarshalYAML() (any, error) {
	if a.List {
		return a.Values, nil
	}
	return a.Scalar(), nil
}

func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Answer{Values: []string{node.Value}}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		*a = Answer{Values: values, List: true}
		return nil
	default:
		return fmt.Errorf("answer: line %d: expected a string or a list of strings", node.Line)
	}
}

// Bank converts the file into a Bank. Whitespace around prompts, options and
// answers is trimmed. The result is checked with Validate.
func (f File) Bank() (Bank, error) {
	c := &issueCollector{}
	questions := make([]Question, 0, len(f.Questions))
	for i, r := range f.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		q, ok := r.question(prefix, c)
		if ok {
			questions = append(questions, q)
		}
	}
	if err := c.result(); err != nil {
		return Bank{}, err
	}

	b := NewBank(strings.TrimSpace(f.Title), questions...)
	if err := Validate(b); err != nil {
		return Bank{}, err
	}
	return b, nil
}

func (r Record) question(prefix string, c *issueCollector) (Question, bool) {
	prompt := strings.TrimSpace(r.Prompt)
	options := trimAll(r.Options)
	answers := trimAll(r.Answer.Values)

	switch Kind(r.Type) {
	case KindSingle:
		if r.Answer.List {
			c.add(prefix+".answer", "must be a single value for single questions")
			return nil, false
		}
		return SingleChoice{Prompt: prompt, Options: options, Correct: first(answers)}, true

	case KindMulti:
		return MultiChoice{Prompt: prompt, Options: options, Correct: answers}, true

	case KindFill:
		if len(options) > 0 {
			c.add(prefix+".options", "not allowed for fill questions")
			return nil, false
		}
		if r.Answer.List {
			c.add(prefix+".answer", "must be a single value for fill questions, use accept for alternates")
			return nil, false
		}
		return FillBlank{Prompt: prompt, Correct: first(answers), Alternates: trimAll(r.Accept)}, true

	case TypeTrueFalse:
		if len(options) > 0 {
			c.add(prefix+".options", "not allowed for true_false questions")
			return nil, false
		}
		answer := first(answers)
		switch {
		case strings.EqualFold(answer, "true"):
			answer = "True"
		case strings.EqualFold(answer, "false"):
			answer = "False"
		default:
			c.add(prefix+".answer", fmt.Sprintf("%q is not true or false", answer))
			return nil, false
		}
		return SingleChoice{Prompt: prompt, Options: []string{"True", "False"}, Correct: answer}, true

	default:
		c.add(prefix+".type", fmt.Sprintf("unknown question type %q", r.Type))
		return nil, false
	}
}

// FileFromBank converts a bank into its file representation.
func FileFromBank(b Bank) File {
	f := File{Version: FileVersion, Title: b.Title()}
	enc := &recordEncoder{}
	for _, q := range b.questions {
		q.Accept(enc)
		f.Questions = append(f.Questions, enc.out)
	}
	return f
}

type recordEncoder struct{ out Record }

func (e *recordEncoder) VisitSingleChoice(q SingleChoice) {
	e.out = Record{
		Type:    string(KindSingle),
		Prompt:  q.Prompt,
		Options: q.Options,
		Answer:  Answer{Values: []string{q.Correct}},
	}
}

func (e *recordEncoder) VisitMultiChoice(q MultiChoice) {
	e.out = Record{
		Type:    string(KindMulti),
		Prompt:  q.Prompt,
		Options: q.Options,
		Answer:  Answer{Values: q.Correct, List: true},
	}
}

func (e *recordEncoder) VisitFillBlank(q FillBlank) {
	e.out = Record{
		Type:   string(KindFill),
		Prompt: q.Prompt,
		Answer: Answer{Values: []string{q.Correct}},
		Accept: q.Alternates,
	}
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
