package model

import "strings"

// Difficulty represents question difficulty level as emitted by the model.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// QuestionType classifies what a challenge question exercises.
type QuestionType string

const (
	TypeComprehension QuestionType = "comprehension"
	TypeAnalysis      QuestionType = "analysis"
	TypeInference     QuestionType = "inference"
	TypeApplication   QuestionType = "application"
)

// ChallengeQuestion is a generated comprehension question with the
// expected-answer description used when grading the user's attempt.
type ChallengeQuestion struct {
	Question       string       `json:"question"`
	ExpectedAnswer string       `json:"expected_answer"`
	Difficulty     Difficulty   `json:"difficulty"`
	Type           QuestionType `json:"type"`
}

// Valid reports whether the question passes the minimum-content gate:
// non-trivial question text and a usable expected answer.
func (q ChallengeQuestion) Valid() bool {
	return len(strings.TrimSpace(q.Question)) > 10 &&
		len(strings.TrimSpace(q.ExpectedAnswer)) > 5
}

// EvaluationResult holds the model's assessment of a user's answer.
// Score is whatever integer the model emitted; it is not clamped to 0-10.
type EvaluationResult struct {
	Evaluation string `json:"evaluation"`
	Feedback   string `json:"feedback"`
	Score      int    `json:"score"`
}

// Entry is one question-answer exchange kept in conversation history.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AssistantConfig holds runtime parameters set via CLI flags.
type AssistantConfig struct {
	AnswerModel   string // model used for summary, Q&A and evaluation
	QuestionModel string // model used for question generation
	NumQuestions  int    // challenge questions per round
	BasePath      string // URL prefix for sub-path deployments (e.g. "/ru")
}
