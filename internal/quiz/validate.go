package quiz

import (
	"fmt"
	"strings"
)

// Issue is a single problem found in a bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found in a bank.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks that every question in the bank is well formed: prompts
// are present, options are non-empty and unique, and declared answers only
// reference the question's own options.
func Validate(b Bank) error {
	c := &issueCollector{}
	if b.Len() == 0 {
		c.add("questions", "must include at least one entry")
	}
	for i, q := range b.questions {
		v := &questionValidator{c: c, prefix: fmt.Sprintf("questions[%d]", i)}
		if strings.TrimSpace(q.Text()) == "" {
			c.add(v.prefix+".prompt", "is required")
		}
		q.Accept(v)
	}
	return c.result()
}

type questionValidator struct {
	c      *issueCollector
	prefix string
}

func (v *questionValidator) VisitSingleChoice(q SingleChoice) {
	set := v.options(q.Options)
	if q.Correct == "" {
		v.c.add(v.prefix+".answer", "is required")
		return
	}
	if _, ok := set[q.Correct]; !ok && len(set) > 0 {
		v.c.add(v.prefix+".answer", fmt.Sprintf("%q is not one of the options", q.Correct))
	}
}

func (v *questionValidator) VisitMultiChoice(q MultiChoice) {
	set := v.options(q.Options)
	if len(q.Correct) == 0 {
		v.c.add(v.prefix+".answer", "must include at least one entry")
		return
	}
	seen := make(map[string]struct{}, len(q.Correct))
	for j, answer := range q.Correct {
		field := fmt.Sprintf("%s.answer[%d]", v.prefix, j)
		if _, dup := seen[answer]; dup {
			v.c.add(field, fmt.Sprintf("duplicate answer %q", answer))
			continue
		}
		seen[answer] = struct{}{}
		if _, ok := set[answer]; !ok && len(set) > 0 {
			v.c.add(field, fmt.Sprintf("%q is not one of the options", answer))
		}
	}
}

func (v *questionValidator) VisitFillBlank(q FillBlank) {
	if strings.TrimSpace(q.Correct) == "" {
		v.c.add(v.prefix+".answer", "is required")
	}
	for j, alt := range q.Alternates {
		if strings.TrimSpace(alt) == "" {
			v.c.add(fmt.Sprintf("%s.accept[%d]", v.prefix, j), "must not be empty")
		}
	}
}

// options checks the option list and returns it as a set.
func (v *questionValidator) options(options []string) map[string]struct{} {
	set := make(map[string]struct{}, len(options))
	if len(options) == 0 {
		v.c.add(v.prefix+".options", "must include at least one entry")
		return set
	}
	for j, opt := range options {
		field := fmt.Sprintf("%s.options[%d]", v.prefix, j)
		if opt == "" {
			v.c.add(field, "must not be empty")
			continue
		}
		if _, dup := set[opt]; dup {
			v.c.add(field, fmt.Sprintf("duplicate option %q", opt))
			continue
		}
		set[opt] = struct{}{}
	}
	return set
}
