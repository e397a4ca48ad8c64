package pipeline

import (
	"fmt"
	"sync"
)

// Warnings is the per-run degraded-data ledger. Scoped to one pipeline run
// so warning suppression never leaks across runs; each distinct key is
// reported once with an occurrence count.
type Warnings struct {
	mu     sync.Mutex
	order  []string
	counts map[string]int
	texts  map[string]string
}

// NewWarnings creates an empty per-run ledger
func NewWarnings() *Warnings {
	return &Warnings{
		counts: make(map[string]int),
		texts:  make(map[string]string),
	}
}

// Record notes a degraded-data event under a stable key
func (w *Warnings) Record(key, format string, args ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, seen := w.counts[key]; !seen {
		w.order = append(w.order, key)
		w.texts[key] = fmt.Sprintf(format, args...)
	}
	w.counts[key]++
}

// Count returns how many events were recorded under a key
func (w *Warnings) Count(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counts[key]
}

// Messages returns one formatted line per distinct key, in first-seen order
func (w *Warnings) Messages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.order))
	for _, key := range w.order {
		msg := w.texts[key]
		if n := w.counts[key]; n > 1 {
			msg = fmt.Sprintf("%s (%d occurrences)", msg, n)
		}
		out = append(out, msg)
	}
	return out
}
