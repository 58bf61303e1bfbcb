// Package bankgen produces question banks with an LLM.
package bankgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/llm"
	"github.com/abhisek/quizbox/internal/quiz"
)

// ErrInvalidInput is returned for an empty topic or a non-positive count.
var ErrInvalidInput = errors.New("invalid generation input")

var allKinds = []quiz.Kind{quiz.KindSingle, quiz.KindMulti, quiz.KindFill}

// Generator asks an llm.Provider for one question at a time.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Generator{provider: provider, config: cfg}
}

// Generate builds a bank of input.Count questions. The returned bank has
// passed quiz.Validate.
func (g *Generator) Generate(ctx context.Context, input Input) (quiz.Bank, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return quiz.Bank{}, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if input.Count < 1 {
		return quiz.Bank{}, fmt.Errorf("%w: count must be positive", ErrInvalidInput)
	}
	kinds := input.Kinds
	if len(kinds) == 0 {
		kinds = allKinds
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = topic
	}

	prior := append([]string(nil), input.Existing...)
	questions := make([]quiz.Question, 0, input.Count)
	for i := range input.Count {
		q, err := g.GenerateQuestion(ctx, QuestionInput{
			Topic:        topic,
			Kind:         kinds[i%len(kinds)],
			PriorPrompts: prior,
		})
		if err != nil {
			return quiz.Bank{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
		prior = append(prior, q.Text())
	}

	bank := quiz.NewBank(title, questions...)
	if err := quiz.Validate(bank); err != nil {
		return quiz.Bank{}, err
	}
	return bank, nil
}

// GenerateQuestion produces one question, regenerating while a validator
// rejects it as retryable and attempts remain.
func (g *Generator) GenerateQuestion(ctx context.Context, input QuestionInput) (quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeBankGen)

	var lastErr error
	for range g.config.MaxAttempts {
		q, err := g.generateOnce(ctx, input)
		if err == nil {
			return q, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (g *Generator) generateOnce(ctx context.Context, input QuestionInput) (quiz.Question, error) {
	req := llm.UserPrompt(systemPrompt, buildUserMessage(input, g.config), QuestionSchema, g.config.MaxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q, err := raw.question()
	if err != nil {
		return nil, &ValidationError{Validator: "convert", Message: err.Error(), Retryable: true}
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}

// question converts the response through the bank file record so the
// same trimming and kind rules apply as for hand-written banks.
func (o questionOutput) question() (quiz.Question, error) {
	kind := quiz.Kind(o.Kind)
	if kind != quiz.KindMulti && len(o.Answers) != 1 {
		return nil, fmt.Errorf("%s questions need exactly one answer, got %d", kind, len(o.Answers))
	}
	rec := quiz.Record{
		Type:    o.Kind,
		Prompt:  o.Prompt,
		Options: o.Options,
		Answer:  quiz.Answer{Values: o.Answers, List: kind == quiz.KindMulti},
		Accept:  o.Accept,
	}
	bank, err := quiz.File{Version: quiz.FileVersion, Questions: []quiz.Record{rec}}.Bank()
	if err != nil {
		return nil, err
	}
	return bank.At(0), nil
}
