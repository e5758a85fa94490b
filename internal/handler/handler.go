// Package handler is the HTTP shell around the assistant: it owns the
// single in-memory session (active document, summary, challenge
// questions, conversation history) and passes that state explicitly
// into each assistant call.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/docent-ai/docent/internal/assistant"
	"github.com/docent-ai/docent/internal/document"
	"github.com/docent-ai/docent/internal/history"
	"github.com/docent-ai/docent/internal/i18n"
	"github.com/docent-ai/docent/internal/model"
	"github.com/docent-ai/docent/internal/prompt"
)

// historyDisplayCount is how many exchanges the history endpoint shows,
// newest first.
const historyDisplayCount = 5

// Handler holds shared dependencies and the session state for HTTP
// handlers. The mutex serializes the session; the core below it is
// single-threaded by design.
type Handler struct {
	assistant *assistant.Assistant
	cfg       model.AssistantConfig

	mu        sync.Mutex
	docName   string
	docText   string
	summary   string
	questions []model.ChallengeQuestion
	current   int
	hist      *history.History
}

// New creates a Handler with an empty session.
func New(a *assistant.Assistant, cfg model.AssistantConfig) *Handler {
	return &Handler{assistant: a, cfg: cfg, hist: history.New()}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/document", h.handleDocumentInfo)
	r.Post("/document", h.handleProcessDocument)
	r.Delete("/document", h.handleClearDocument)
	r.Post("/ask", h.handleAsk)
	r.Get("/history", h.handleHistory)
	r.Post("/challenge/start", h.handleStartChallenge)
	r.Post("/challenge/answer", h.handleAnswerChallenge)
	r.Post("/challenge/skip", h.handleSkipQuestion)
	r.Post("/challenge/question", h.handleTypedQuestion)
}

// questionView is a challenge question as shown to the user: the
// expected answer stays server-side until grading.
type questionView struct {
	Index      int                `json:"index"`
	Total      int                `json:"total"`
	Question   string             `json:"question"`
	Difficulty model.Difficulty   `json:"difficulty"`
	Type       model.QuestionType `json:"type"`
	Progress   string             `json:"progress"`
}

func (h *Handler) questionViewLocked(r *http.Request) questionView {
	q := h.questions[h.current]
	return questionView{
		Index:      h.current + 1,
		Total:      len(h.questions),
		Question:   q.Question,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Progress: i18n.Td(r.Context(), "QuestionProgress", map[string]any{
			"Index": h.current + 1,
			"Total": len(h.questions),
		}),
	}
}

func (h *Handler) handleDocumentInfo(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusNotFound, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":    h.docName,
		"length":  len(h.docText),
		"summary": h.summary,
	})
}

func (h *Handler) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrInvalidRequest"))
		return
	}
	if err := document.ValidateText(req.Text); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrDocumentTooShort"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.docName = req.Name
	h.docText = req.Text
	h.summary = h.assistant.Summarize(r.Context(), req.Text)
	h.questions = nil
	h.current = 0
	h.hist.Clear()

	slog.Info("document processed", "name", req.Name, "length", len(req.Text))
	respondJSON(w, http.StatusOK, map[string]any{
		"name":    h.docName,
		"length":  len(h.docText),
		"summary": h.summary,
		"message": i18n.T(r.Context(), "DocumentProcessed"),
	})
}

func (h *Handler) handleClearDocument(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.docName = ""
	h.docText = ""
	h.summary = ""
	h.questions = nil
	h.current = 0
	h.hist.Clear()

	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "DocumentCleared"),
	})
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrInvalidRequest"))
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrEmptyQuestion"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}

	tail := h.hist.RecentTail(prompt.HistoryWindow)
	answer, justification := h.assistant.Answer(r.Context(), h.docText, req.Question, tail)
	h.hist.Append(req.Question, answer)

	respondJSON(w, http.StatusOK, map[string]string{
		"question":      req.Question,
		"answer":        answer,
		"justification": justification,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tail := h.hist.RecentTail(historyDisplayCount)
	// Newest first for display.
	entries := make([]model.Entry, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		entries = append(entries, tail[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"total":   h.hist.Len(),
		"entries": entries,
	})
}

func (h *Handler) handleStartChallenge(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}

	// Regenerate when no set exists or the previous one is exhausted;
	// restarting a finished challenge starts a fresh round.
	if h.current >= len(h.questions) {
		h.questions = h.assistant.GenerateQuestions(r.Context(), h.docText, h.cfg.NumQuestions)
		h.current = 0
		slog.Info("challenge questions generated", "count", len(h.questions))
	}
	if len(h.questions) == 0 {
		// Parsing can filter every candidate out; the gateway-failure
		// path never gets here because it substitutes the fallback set.
		respondError(w, http.StatusBadGateway, i18n.T(r.Context(), "ErrNoQuestions"))
		return
	}

	respondJSON(w, http.StatusOK, h.questionViewLocked(r))
}

func (h *Handler) handleAnswerChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrInvalidRequest"))
		return
	}
	if req.Answer == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrEmptyAnswer"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}
	if h.current >= len(h.questions) {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ChallengeComplete"))
		return
	}

	q := h.questions[h.current]
	result := h.assistant.Evaluate(r.Context(), h.docText, q, req.Answer)
	h.current++

	respondJSON(w, http.StatusOK, map[string]any{
		"question":        q.Question,
		"expected_answer": q.ExpectedAnswer,
		"evaluation":      result.Evaluation,
		"feedback":        result.Feedback,
		"score":           result.Score,
		"done":            h.current >= len(h.questions),
	})
}

func (h *Handler) handleSkipQuestion(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}
	if h.current >= len(h.questions) {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ChallengeComplete"))
		return
	}
	h.current++
	if h.current >= len(h.questions) {
		respondJSON(w, http.StatusOK, map[string]any{
			"done":    true,
			"message": i18n.T(r.Context(), "ChallengeComplete"),
		})
		return
	}
	respondJSON(w, http.StatusOK, h.questionViewLocked(r))
}

func (h *Handler) handleTypedQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type model.QuestionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrInvalidRequest"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.docText == "" {
		respondError(w, http.StatusBadRequest, i18n.T(r.Context(), "ErrNoDocument"))
		return
	}

	q := h.assistant.GenerateTypedQuestion(r.Context(), h.docText, req.Type)
	h.questions = append(h.questions, q)

	respondJSON(w, http.StatusOK, map[string]any{
		"question":   q.Question,
		"difficulty": q.Difficulty,
		"type":       q.Type,
		"total":      len(h.questions),
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
