// Package prompt assembles task-specific prompts from truncated
// document text and request data. Prompt wording lives in embedded
// template files; builders are deterministic and perform no I/O.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/docent-ai/docent/internal/model"
)

// HistoryWindow is the number of recent exchanges injected into an
// answer prompt as conversation context.
const HistoryWindow = 3

//go:embed templates/*.txt
var templateFS embed.FS

var (
	loadOnce  sync.Once
	loadErr   error
	templates *template.Template
)

// load parses all embedded templates exactly once.
func load() error {
	loadOnce.Do(func() {
		templates, loadErr = template.ParseFS(templateFS, "templates/*.txt")
		if loadErr != nil {
			loadErr = fmt.Errorf("parse prompt templates: %w", loadErr)
		}
	})
	return loadErr
}

func execute(name string, data any) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}

type summaryData struct {
	Document string
}

type answerData struct {
	Document string
	History  []model.Entry
	Question string
}

type evaluateData struct {
	Document       string
	Question       string
	ExpectedAnswer string
	UserAnswer     string
}

type questionsData struct {
	Document     string
	NumQuestions int
}

type typedQuestionData struct {
	Document    string
	Instruction string
}

// Summary builds the prompt requesting a 150-words-or-less summary.
func Summary(document string) (string, error) {
	return execute("summary.txt", summaryData{Document: document})
}

// Answer builds the grounded Q&A prompt. Up to the last HistoryWindow
// entries of history are embedded as Q/A pairs before the new question.
func Answer(document, question string, history []model.Entry) (string, error) {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	return execute("answer.txt", answerData{
		Document: document,
		History:  history,
		Question: question,
	})
}

// Evaluation builds the prompt asking the model to grade a user's
// answer with labeled Evaluation/Feedback/Score lines.
func Evaluation(document string, q model.ChallengeQuestion, userAnswer string) (string, error) {
	return execute("evaluate.txt", evaluateData{
		Document:       document,
		Question:       q.Question,
		ExpectedAnswer: q.ExpectedAnswer,
		UserAnswer:     userAnswer,
	})
}

// QuestionGen builds the prompt requesting numQuestions challenge
// questions as a JSON array.
func QuestionGen(document string, numQuestions int) (string, error) {
	return execute("questions.txt", questionsData{
		Document:     document,
		NumQuestions: numQuestions,
	})
}

var typeInstructions = map[model.QuestionType]string{
	model.TypeComprehension: "generate a question that tests understanding of the main concepts in the document.",
	model.TypeAnalysis:      "generate a question that requires analyzing relationships or patterns in the document.",
	model.TypeInference:     "generate a question that requires making logical inferences from the document content.",
	model.TypeApplication:   "generate a question that asks how the information could be applied or used.",
}

// TypedQuestion builds the prompt requesting a single question of the
// given type. An unknown type gets the comprehension instruction.
func TypedQuestion(document string, questionType model.QuestionType) (string, error) {
	instruction, ok := typeInstructions[questionType]
	if !ok {
		instruction = typeInstructions[model.TypeComprehension]
	}
	return execute("typed_question.txt", typedQuestionData{
		Document:    document,
		Instruction: instruction,
	})
}
