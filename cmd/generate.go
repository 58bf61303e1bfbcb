package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bankgen"
	"github.com/abhisek/quizbox/internal/llm"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question bank with an LLM",
	Example: `  quizbox generate --topic "world capitals" --count 5 -o capitals.yaml
  quizbox generate --topic astronomy --kinds single,fill --bank space.yaml --append -o space.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		topic, _ := flags.GetString("topic")
		count, _ := flags.GetInt("count")
		title, _ := flags.GetString("title")
		out, _ := flags.GetString("output")
		kindList, _ := flags.GetStringSlice("kinds")
		extend, _ := flags.GetBool("append")

		kinds, err := parseKinds(kindList)
		if err != nil {
			return err
		}

		var base []quiz.Question
		input := bankgen.Input{Title: title, Topic: topic, Count: count, Kinds: kinds}
		if extend {
			b, err := loadBank()
			if err != nil {
				return err
			}
			base = b.Questions()
			for _, q := range base {
				input.Existing = append(input.Existing, q.Text())
			}
			if input.Title == "" {
				input.Title = b.Title()
			}
		}

		var events store.EventRepo
		if st, err := openStore(cmd); err != nil {
			logger.Warn("LLM events will not be recorded", "error", err)
		} else {
			defer st.Close()
			events = st.EventRepo()
		}

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), events, logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		logger.Info("generating bank", "topic", topic, "count", count, "model", provider.ModelID())
		generated, err := bankgen.New(provider, bankgen.DefaultConfig()).Generate(ctx, input)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		bank := quiz.NewBank(generated.Title(), append(base, generated.Questions()...)...)

		if out == "" {
			return quiz.WriteBank(cmd.OutOrStdout(), bank, quiz.FormatYAML)
		}
		if err := quiz.SaveBank(out, bank); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d questions to %s\n", bank.Len(), out)
		return nil
	},
}

func parseKinds(names []string) ([]quiz.Kind, error) {
	var kinds []quiz.Kind
	for _, n := range names {
		k := quiz.Kind(strings.ToLower(strings.TrimSpace(n)))
		switch k {
		case quiz.KindSingle, quiz.KindMulti, quiz.KindFill:
			kinds = append(kinds, k)
		case "":
		default:
			return nil, fmt.Errorf("unknown question kind %q (want single, multi or fill)", n)
		}
	}
	return kinds, nil
}

func init() {
	generateCmd.Flags().String("topic", "", "Subject of the questions")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	generateCmd.Flags().String("title", "", "Bank title (default: the topic)")
	generateCmd.Flags().StringSlice("kinds", nil, "Question kinds to cycle through: single, multi, fill")
	generateCmd.Flags().Bool("append", false, "Extend the bank given by --bank instead of starting fresh")
	generateCmd.Flags().StringP("output", "o", "", "Output file, .json or .yaml (default stdout as YAML)")
	_ = generateCmd.MarkFlagRequired("topic")
}
