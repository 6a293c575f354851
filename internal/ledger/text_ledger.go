package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// TextLedger holds the editable text for each document page. The on-disk
// format is an array of singleton objects, one per page, e.g.
// [{"1": "text of page one"}, {"2": "..."}], the shape produced by the
// extraction step. Order is preserved and unknown pages are appended, so the
// document grows monotonically as new pages get visited.
type TextLedger struct {
	mu      sync.Mutex
	path    string
	entries []textEntry
	index   map[string]int
}

type textEntry struct {
	key  string
	text string
}

// OpenTextLedger loads the ledger file. A missing file yields an empty
// ledger; pages default to empty text until saved.
func OpenTextLedger(path string) (*TextLedger, error) {
	l := &TextLedger{path: path, index: make(map[string]int)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read text ledger: %w", err)
	}

	var items []map[string]string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse text ledger: %w", err)
	}
	for _, item := range items {
		for key, text := range item {
			if _, dup := l.index[key]; dup {
				continue
			}
			l.index[key] = len(l.entries)
			l.entries = append(l.entries, textEntry{key: key, text: text})
		}
	}
	return l, nil
}

// Text returns the stored text for a page, or empty when never saved.
func (l *TextLedger) Text(page int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i, ok := l.index[strconv.Itoa(page)]; ok {
		return l.entries[i].text
	}
	return ""
}

// SaveText stores new text for a page, appending a record when the page has
// no entry yet. The whole document is rewritten before the in-memory state
// updates.
func (l *TextLedger) SaveText(page int, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strconv.Itoa(page)
	next := make([]textEntry, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)

	i, ok := l.index[key]
	if ok {
		next[i].text = text
	} else {
		i = len(next)
		next = append(next, textEntry{key: key, text: text})
	}

	if err := writeJSON(l.path, marshalEntries(next)); err != nil {
		return err
	}
	l.entries = next
	l.index[key] = i
	return nil
}

// Pages returns the page numbers present in the ledger, in file order.
// Non-numeric keys are skipped.
func (l *TextLedger) Pages() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	pages := make([]int, 0, len(l.entries))
	for _, entry := range l.entries {
		if page, err := strconv.Atoi(entry.key); err == nil {
			pages = append(pages, page)
		}
	}
	return pages
}

func marshalEntries(entries []textEntry) []map[string]string {
	items := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]string{entry.key: entry.text})
	}
	return items
}
