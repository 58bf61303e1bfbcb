package bankgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write questions for a short general knowledge quiz.

Rules:
- Produce exactly one question of the requested kind about the given topic.
- "single": 3 to 5 options, exactly one correct.
- "multi": 3 to 5 options, at least two correct. The player must pick every correct option.
- "fill": no options. The answer is a short word or phrase. List common alternative spellings in accept.
- Answers for single and multi must be copied character for character from options.
- Options must be distinct and must not be empty.
- Keep the prompt under 200 characters and make it self-contained.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage renders the request for one question.
func buildUserMessage(input QuestionInput, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Kind: %s\n", input.Kind)
	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorPrompts, cfg.MaxPriorQuestions))
	return b.String()
}
