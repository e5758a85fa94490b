// Package token bounds prompt size by counting and truncating text in
// model tokens rather than bytes.
package token

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Per-task token ceilings for the document portion of a prompt.
const (
	SummaryBudget       = 2500
	AnswerBudget        = 2500
	EvaluationBudget    = 2000
	QuestionBudget      = 2500
	TypedQuestionBudget = 2000
)

// Budgeter counts tokens and truncates text to a token ceiling using
// the cl100k_base encoding.
type Budgeter struct {
	enc *tiktoken.Tiktoken
}

// New creates a Budgeter. A tokenizer that fails to initialize is a
// fatal condition: without it, prompts cannot be kept under the
// provider's request limits.
func New() (*Budgeter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("get cl100k_base encoding: %w", err)
	}
	return &Budgeter{enc: enc}, nil
}

// Count returns the number of tokens text encodes to.
func (b *Budgeter) Count(text string) int {
	return len(b.enc.Encode(text, nil, nil))
}

// Truncate returns text cut to at most maxTokens tokens, keeping the
// leading portion. Text already within the budget is returned
// unchanged. The start of a document (abstract, introduction) is
// assumed to carry the most information.
func (b *Budgeter) Truncate(text string, maxTokens int) string {
	tokens := b.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return b.enc.Decode(tokens[:maxTokens])
}
