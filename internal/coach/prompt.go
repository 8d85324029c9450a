package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

const systemPrompt = `You are a friendly mental-arithmetic coach. A learner just missed a quick drill question. Show the shortest working that reaches the answer, then one tip for next time.`

func buildUserMessage(q *problemgen.Question, learnerAnswer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", q.Domain.DisplayName())
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	if q.Hint != "" {
		fmt.Fprintf(&b, "Asked for: %s\n", q.Hint)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	if strings.TrimSpace(learnerAnswer) == "" {
		b.WriteString("Learner answer: none (ran out of time)\n")
	} else {
		fmt.Fprintf(&b, "Learner answer: %s\n", learnerAnswer)
	}

	b.WriteString(`
Instructions:
1. Give 1-6 steps. Each step is one short line of working.
2. The last step must state the correct answer exactly as given above.
3. If the learner's answer looks like a common slip (off by one row, swapped digits, wrong operation), name it in a step.
4. The tip is one sentence a learner can recall in under five seconds.
5. Plain text only. No LaTeX.`)

	return b.String()
}
