package history

import (
	"fmt"
	"testing"
)

func TestAppendEvictsOldest(t *testing.T) {
	h := New()
	for i := 1; i <= MaxEntries+1; i++ {
		h.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	if h.Len() != MaxEntries {
		t.Fatalf("Len() = %d, want %d", h.Len(), MaxEntries)
	}

	entries := h.RecentTail(MaxEntries)
	if entries[0].Question != "q2" {
		t.Errorf("oldest surviving entry = %q, want q2", entries[0].Question)
	}
	if entries[len(entries)-1].Question != fmt.Sprintf("q%d", MaxEntries+1) {
		t.Errorf("newest entry = %q, want q%d", entries[len(entries)-1].Question, MaxEntries+1)
	}
	for i, e := range entries {
		want := fmt.Sprintf("q%d", i+2)
		if e.Question != want {
			t.Errorf("entries[%d].Question = %q, want %q", i, e.Question, want)
		}
	}
}

func TestRecentTail(t *testing.T) {
	h := New()
	h.Append("q1", "a1")
	h.Append("q2", "a2")
	h.Append("q3", "a3")
	h.Append("q4", "a4")

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"last three", 3, []string{"q2", "q3", "q4"}},
		{"more than stored", 10, []string{"q1", "q2", "q3", "q4"}},
		{"zero", 0, nil},
		{"negative", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.RecentTail(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("RecentTail(%d) returned %d entries, want %d", tt.n, len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Question != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, e.Question, tt.want[i])
				}
			}
		})
	}
}

func TestRecentTailEmpty(t *testing.T) {
	h := New()
	if got := h.RecentTail(3); got != nil {
		t.Errorf("RecentTail on empty history = %v, want nil", got)
	}
}

func TestClear(t *testing.T) {
	h := New()
	h.Append("q1", "a1")
	h.Append("q2", "a2")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
	if got := h.RecentTail(3); got != nil {
		t.Errorf("RecentTail after Clear = %v, want nil", got)
	}
}

func TestRecentTailReturnsCopy(t *testing.T) {
	h := New()
	h.Append("q1", "a1")
	h.Append("q2", "a2")

	tail := h.RecentTail(2)
	tail[0].Question = "mutated"

	if got := h.RecentTail(2); got[0].Question != "q1" {
		t.Errorf("internal state mutated through returned slice: %q", got[0].Question)
	}
}
