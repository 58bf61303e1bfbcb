package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QUIZBOX_BANK", "")
	t.Setenv("QUIZBOX_DB", "")
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so commands can be
// executed more than once in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestParseAnswers(t *testing.T) {
	form, err := parseAnswers([]string{"question1=Banana", "question1=Apple", "question2= zero "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana", "Apple"}, form["question1"])
	assert.Equal(t, " zero ", form.Get("question2"))

	_, err = parseAnswers([]string{"question0"})
	assert.Error(t, err)
	_, err = parseAnswers([]string{"=2024"})
	assert.Error(t, err)
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"Single", " fill"})
	require.NoError(t, err)
	assert.Equal(t, []quiz.Kind{quiz.KindSingle, quiz.KindFill}, kinds)

	_, err = parseKinds([]string{"essay"})
	assert.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score",
		"--answer", "question0=2024",
		"--answer", "question1=Banana", "--answer", "question1=Apple",
		"--answer", "question2= ZERO ",
		"--answer", "question3=Best Filmfare",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Your score is 3 out of 4")
}

func TestScoreCommandRecordsAttempt(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	_, err := run(t, "score", "--db", db, "--record", "--answer", "question0=2024")
	require.NoError(t, err)

	out, err := run(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "cli")
}

func TestMissingBankFileIsSeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	out, err := run(t, "score", "--bank", path, "--answer", "question0=2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Your score is 1 out of 4")

	seeded, err := quiz.LoadBank(path)
	require.NoError(t, err)
	assert.Equal(t, quiz.DefaultBank().Len(), seeded.Len())

	custom := quiz.NewBank("Custom", quiz.FillBlank{Prompt: "2 + 2 = ?", Correct: "4"})
	require.NoError(t, quiz.SaveBank(path, custom))
	out, err = run(t, "score", "--bank", path, "--answer", "question0=4")
	require.NoError(t, err)
	assert.Contains(t, out, "Your score is 1 out of 1")
}

func TestBankExportAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	_, err := run(t, "bank", "export", "-o", path, "--format", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Gaddar Filmfare Awards"`)

	out, err := run(t, "bank", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (4 questions)")
}

func TestBankValidateReportsIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
title: Bad
questions:
  - type: single
    prompt: Pick one
    options: [a, b]
    answer: c
`), 0o644))

	_, err := run(t, "bank", "validate", path)
	assert.Error(t, err)
}

func TestBankShow(t *testing.T) {
	out, err := run(t, "bank", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Quick Quiz (4 questions)")
	assert.Contains(t, out, "(•) 2024")
	assert.Contains(t, out, "[x] Banana")
	assert.Contains(t, out, "answer: zero")
}

func TestWriteUsage(t *testing.T) {
	var out bytes.Buffer
	writeUsage(&out,
		[]store.LLMUsageStats{{Purpose: "bank-gen", Calls: 2, InputTokens: 1_000_000, OutputTokens: 1_000_000, AvgLatencyMs: 120}},
		[]store.LLMModelUsage{
			{Model: "claude-haiku-4-5", Calls: 1, InputTokens: 1_000_000, OutputTokens: 1_000_000},
			{Model: "home-grown", Calls: 1},
		},
	)
	s := out.String()
	assert.Contains(t, s, "bank-gen")
	assert.Contains(t, s, "$6.00")
	assert.Contains(t, s, "TOTAL (partial)")
	assert.Contains(t, s, "Pricing unavailable for: home-grown")
}

func TestWriteUsageEmpty(t *testing.T) {
	var out bytes.Buffer
	writeUsage(&out, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())
}

func TestWriteEvent(t *testing.T) {
	var out bytes.Buffer
	writeEvent(&out, &store.LLMEvent{
		ID: 7,
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "bank-gen",
			ErrorMessage: "rate limited", RequestBody: "[user]\nTopic: space",
		},
	})
	s := out.String()
	assert.Contains(t, s, "ID:        7")
	assert.Contains(t, s, "Error:     rate limited")
	assert.Contains(t, s, "Topic: space")
	assert.Contains(t, s, "(not captured)")
}
