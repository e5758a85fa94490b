// Package parse extracts structured results from the model's free-text
// replies. The reply format is requested but never guaranteed, so every
// parser here has a documented default or fallback instead of an error
// path: malformed output is expected input, not a fault.
package parse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/docent-ai/docent/internal/model"
)

// GenericJustification is returned when the reply carries no usable
// justification section.
const GenericJustification = "Response is grounded in the document content."

const justificationMarker = "justification:"

// SplitAnswerJustification splits a Q&A reply into the answer and the
// justification following a "Justification:" marker, matched case
// insensitively. Without a marker, or when either side of the split is
// empty, the whole reply becomes the answer and a generic justification
// is substituted.
func SplitAnswerJustification(raw string) (answer, justification string) {
	idx := strings.Index(strings.ToLower(raw), justificationMarker)
	if idx >= 0 {
		answer = strings.TrimSpace(raw[:idx])
		justification = strings.TrimSpace(raw[idx+len(justificationMarker):])
		if answer != "" && justification != "" {
			return answer, justification
		}
	}
	return strings.TrimSpace(raw), GenericJustification
}

// ParseEvaluation scans the reply for "Evaluation:", "Feedback:" and
// "Score:" lines. Lines that are missing or unparseable keep their
// defaults: a "Partially Correct" verdict, the raw reply as feedback,
// and a middle-of-the-road score of 5. The score is not clamped; an
// out-of-range value is passed through as the model emitted it.
func ParseEvaluation(raw string) model.EvaluationResult {
	result := model.EvaluationResult{
		Evaluation: "Partially Correct",
		Feedback:   strings.TrimSpace(raw),
		Score:      5,
	}

	// Labels must sit at the start of the line; an indented label is
	// treated as body text.
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "Evaluation:"):
			result.Evaluation = strings.TrimSpace(strings.TrimPrefix(line, "Evaluation:"))
		case strings.HasPrefix(line, "Feedback:"):
			result.Feedback = strings.TrimSpace(strings.TrimPrefix(line, "Feedback:"))
		case strings.HasPrefix(line, "Score:"):
			if v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Score:"))); err == nil {
				result.Score = v
			}
		}
	}

	return result
}

// ParseQuestionSet extracts a question set from a reply that should
// contain a JSON array, tolerating surrounding prose by parsing only
// the span between the first '[' and the last ']'. Entries missing any
// of the question, expected_answer or difficulty fields are dropped;
// a missing type defaults to comprehension. At most n questions are
// returned. When the span is absent or not valid JSON, the reply is
// re-parsed line by line with manualParse.
func ParseQuestionSet(raw string, n int) []model.ChallengeQuestion {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return manualParse(raw, n)
	}

	var items []struct {
		Question       string `json:"question"`
		ExpectedAnswer string `json:"expected_answer"`
		Difficulty     string `json:"difficulty"`
		Type           string `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return manualParse(raw, n)
	}

	var questions []model.ChallengeQuestion
	for _, item := range items {
		if item.Question == "" || item.ExpectedAnswer == "" || item.Difficulty == "" {
			continue
		}
		q := model.ChallengeQuestion{
			Question:       strings.TrimSpace(item.Question),
			ExpectedAnswer: strings.TrimSpace(item.ExpectedAnswer),
			Difficulty:     model.Difficulty(strings.TrimSpace(item.Difficulty)),
			Type:           model.QuestionType(strings.TrimSpace(item.Type)),
		}
		if q.Type == "" {
			q.Type = model.TypeComprehension
		}
		questions = append(questions, q)
	}

	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

// questionMarkers are the line prefixes manualParse treats as the start
// of a question. A best-effort heuristic: do not grow this list without
// real replies that need it.
var questionMarkers = []string{"1.", "2.", "3.", "Question:", "Q:"}

// manualParse recovers questions from a reply that failed JSON parsing
// by treating each marker-prefixed line as one question with
// placeholder metadata. Returns at most n questions in encounter order,
// and nothing when no line matches.
func manualParse(raw string, n int) []model.ChallengeQuestion {
	var questions []model.ChallengeQuestion
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range questionMarkers {
			if strings.HasPrefix(line, marker) {
				questions = append(questions, model.ChallengeQuestion{
					Question:       line,
					ExpectedAnswer: "Based on document content",
					Difficulty:     model.DifficultyMedium,
					Type:           model.TypeComprehension,
				})
				break
			}
		}
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

// fallbackSet is served when question generation itself fails (a
// transport or service failure, not a parse failure) so that challenge
// mode always has something to offer.
var fallbackSet = []model.ChallengeQuestion{
	{
		Question:       "What is the main topic or theme discussed in this document?",
		ExpectedAnswer: "The main topic should be identified from the document content",
		Difficulty:     model.DifficultyEasy,
		Type:           model.TypeComprehension,
	},
	{
		Question:       "What are the key findings or conclusions presented in the document?",
		ExpectedAnswer: "Key findings should be summarized from the document",
		Difficulty:     model.DifficultyMedium,
		Type:           model.TypeAnalysis,
	},
	{
		Question:       "Based on the information provided, what implications or applications can be drawn?",
		ExpectedAnswer: "Implications should be inferred from the document content",
		Difficulty:     model.DifficultyHard,
		Type:           model.TypeInference,
	},
}

// FallbackQuestions returns up to n entries of the static generic
// question set, in increasing difficulty.
func FallbackQuestions(n int) []model.ChallengeQuestion {
	questions := make([]model.ChallengeQuestion, len(fallbackSet))
	copy(questions, fallbackSet)
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

// Validate filters out questions that fail the minimum-content gate.
// Surviving entries are returned unmodified.
func Validate(questions []model.ChallengeQuestion) []model.ChallengeQuestion {
	var valid []model.ChallengeQuestion
	for _, q := range questions {
		if q.Valid() {
			valid = append(valid, q)
		}
	}
	return valid
}
