package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/hrdesk/review-api/internal/models"
)

// StatusLedger tracks per-page approval state, persisted as a single JSON
// object mapping page number to state. The file is read once at open and
// rewritten wholesale on every approval; the ledger assumes single-process
// ownership of its file.
type StatusLedger struct {
	mu     sync.Mutex
	path   string
	states map[string]models.PageState
}

// OpenStatusLedger loads the ledger file. A missing file is not an error:
// every page starts in review.
func OpenStatusLedger(path string) (*StatusLedger, error) {
	l := &StatusLedger{path: path, states: make(map[string]models.PageState)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read status ledger: %w", err)
	}
	if err := json.Unmarshal(raw, &l.states); err != nil {
		return nil, fmt.Errorf("parse status ledger: %w", err)
	}
	return l, nil
}

// Status returns the state for a page, defaulting to review.
func (l *StatusLedger) Status(page int) models.PageState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if state, ok := l.states[strconv.Itoa(page)]; ok {
		return state
	}
	return models.PageStateReview
}

// Approve transitions a page from review to approved. The transition is
// one-directional: approving an approved page fails. The full ledger is
// written to disk before the in-memory state changes, so an observed
// "approved" is always a persisted one.
func (l *StatusLedger) Approve(page int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strconv.Itoa(page)
	if l.states[key] == models.PageStateApproved {
		return ErrAlreadyApproved
	}

	next := make(map[string]models.PageState, len(l.states)+1)
	for k, v := range l.states {
		next[k] = v
	}
	next[key] = models.PageStateApproved

	if err := writeJSON(l.path, next); err != nil {
		return err
	}
	l.states = next
	return nil
}

// ApprovedCount reports how many pages are approved.
func (l *StatusLedger) ApprovedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, state := range l.states {
		if state == models.PageStateApproved {
			count++
		}
	}
	return count
}

// ErrAlreadyApproved marks an approval attempt on an approved page.
var ErrAlreadyApproved = fmt.Errorf("page already approved")

func writeJSON(path string, v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare ledger directory: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
