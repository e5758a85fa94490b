// Package history keeps a bounded log of question-answer exchanges used
// to give follow-up questions their recent context.
package history

import "github.com/docent-ai/docent/internal/model"

// MaxEntries is the hard cap on retained exchanges; the oldest entry is
// evicted once the cap is reached.
const MaxEntries = 10

// History is an ordered, append-only log of Q&A pairs with FIFO
// eviction. The zero value is ready to use. Not safe for concurrent
// use; callers serialize access.
type History struct {
	entries []model.Entry
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Append records a completed exchange, evicting the oldest entry if the
// log is full.
func (h *History) Append(question, answer string) {
	h.entries = append(h.entries, model.Entry{Question: question, Answer: answer})
	if len(h.entries) > MaxEntries {
		h.entries = h.entries[1:]
	}
}

// RecentTail returns the last n entries in oldest-to-newest order. It
// returns fewer when the log holds fewer, and nil for n <= 0.
func (h *History) RecentTail(n int) []model.Entry {
	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	tail := make([]model.Entry, n)
	copy(tail, h.entries[len(h.entries)-n:])
	return tail
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear drops all entries. Called when the active document changes.
func (h *History) Clear() {
	h.entries = nil
}
