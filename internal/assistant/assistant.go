// Package assistant orchestrates one blocking call chain per user
// action: truncate the document, build the prompt, call the gateway,
// interpret the reply. It holds no session state; the active document,
// history tail and question set are supplied by the caller.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docent-ai/docent/internal/llm"
	"github.com/docent-ai/docent/internal/model"
	"github.com/docent-ai/docent/internal/parse"
	"github.com/docent-ai/docent/internal/prompt"
	"github.com/docent-ai/docent/internal/token"
)

// Gateway is the completion call the assistant depends on.
type Gateway interface {
	Complete(ctx context.Context, modelName, prompt string, p llm.Params) (string, error)
}

// Truncator bounds the document portion of a prompt to a token budget.
type Truncator interface {
	Truncate(text string, maxTokens int) string
}

// Assistant answers questions, summarizes, generates challenge
// questions and grades answers, all grounded in a caller-supplied
// document. Every method returns a displayable result even when the
// gateway fails.
type Assistant struct {
	tokens Truncator
	gw     Gateway
	cfg    model.AssistantConfig
}

// New creates an Assistant.
func New(tokens Truncator, gw Gateway, cfg model.AssistantConfig) *Assistant {
	return &Assistant{tokens: tokens, gw: gw, cfg: cfg}
}

// Summarize returns a summary of the document, or a formatted error
// string when the gateway call fails.
func (a *Assistant) Summarize(ctx context.Context, documentText string) string {
	truncated := a.tokens.Truncate(documentText, token.SummaryBudget)
	p, err := prompt.Summary(truncated)
	if err != nil {
		return fmt.Sprintf("Error generating summary: %s", err)
	}
	raw, err := a.gw.Complete(ctx, a.cfg.AnswerModel, p, llm.SummaryParams)
	if err != nil {
		slog.Error("summary generation failed", "error", err)
		return fmt.Sprintf("Error generating summary: %s", err)
	}
	return strings.TrimSpace(raw)
}

// Answer answers a free-form question from the document content,
// injecting the supplied history tail for follow-up context. On gateway
// failure the answer is a formatted error string and the justification
// is empty.
func (a *Assistant) Answer(ctx context.Context, documentText, question string, history []model.Entry) (answer, justification string) {
	truncated := a.tokens.Truncate(documentText, token.AnswerBudget)
	p, err := prompt.Answer(truncated, question, history)
	if err != nil {
		return fmt.Sprintf("Error answering question: %s", err), ""
	}
	raw, err := a.gw.Complete(ctx, a.cfg.AnswerModel, p, llm.AnswerParams)
	if err != nil {
		slog.Error("question answering failed", "error", err)
		return fmt.Sprintf("Error answering question: %s", err), ""
	}
	return parse.SplitAnswerJustification(raw)
}

// Evaluate grades the user's answer to a challenge question. On gateway
// failure the result carries an "Error" verdict and a zero score.
func (a *Assistant) Evaluate(ctx context.Context, documentText string, q model.ChallengeQuestion, userAnswer string) model.EvaluationResult {
	truncated := a.tokens.Truncate(documentText, token.EvaluationBudget)
	p, err := prompt.Evaluation(truncated, q, userAnswer)
	if err != nil {
		return errorEvaluation(err)
	}
	raw, err := a.gw.Complete(ctx, a.cfg.AnswerModel, p, llm.EvaluationParams)
	if err != nil {
		slog.Error("answer evaluation failed", "error", err)
		return errorEvaluation(err)
	}
	return parse.ParseEvaluation(raw)
}

func errorEvaluation(err error) model.EvaluationResult {
	return model.EvaluationResult{
		Evaluation: "Error",
		Feedback:   fmt.Sprintf("Error evaluating answer: %s", err),
		Score:      0,
	}
}

// GenerateQuestions produces up to numQuestions challenge questions
// from the document. A gateway failure substitutes the static fallback
// set: challenge mode cannot function with zero questions, so this flow
// gets a stronger recovery guarantee than the others.
func (a *Assistant) GenerateQuestions(ctx context.Context, documentText string, numQuestions int) []model.ChallengeQuestion {
	truncated := a.tokens.Truncate(documentText, token.QuestionBudget)
	p, err := prompt.QuestionGen(truncated, numQuestions)
	if err != nil {
		slog.Error("question prompt build failed", "error", err)
		return parse.FallbackQuestions(numQuestions)
	}
	raw, err := a.gw.Complete(ctx, a.cfg.QuestionModel, p, llm.QuestionParams)
	if err != nil {
		slog.Error("question generation failed", "error", err)
		return parse.FallbackQuestions(numQuestions)
	}
	return parse.Validate(parse.ParseQuestionSet(raw, numQuestions))
}

// GenerateTypedQuestion produces a single question of the given type.
// The reply text is used verbatim as the question; on failure a generic
// question about the requested type is substituted.
func (a *Assistant) GenerateTypedQuestion(ctx context.Context, documentText string, questionType model.QuestionType) model.ChallengeQuestion {
	truncated := a.tokens.Truncate(documentText, token.TypedQuestionBudget)
	p, err := prompt.TypedQuestion(truncated, questionType)
	if err == nil {
		var raw string
		raw, err = a.gw.Complete(ctx, a.cfg.QuestionModel, p, llm.TypedQuestionParams)
		if err == nil {
			return model.ChallengeQuestion{
				Question:       raw,
				ExpectedAnswer: fmt.Sprintf("Answer should be based on %s of the document content", questionType),
				Difficulty:     model.DifficultyMedium,
				Type:           questionType,
			}
		}
	}
	slog.Error("typed question generation failed", "type", questionType, "error", err)
	return model.ChallengeQuestion{
		Question:       fmt.Sprintf("What insights can you gain from this document regarding %s?", questionType),
		ExpectedAnswer: "Answer should be based on document content",
		Difficulty:     model.DifficultyMedium,
		Type:           questionType,
	}
}
