package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// Mode prefixes used in the persisted history file.
const (
	prefixEval = "E:"
	prefixCtrl = "C:"
)

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// prefix returns the persistence prefix for the entry's mode.
func (e HistoryEntry) prefix() string {
	if e.Mode == modeCtrl {
		return prefixCtrl
	}

	return prefixEval
}

// History manages REPL input history with file persistence.
// Eval and command entries share one file, distinguished by mode prefix.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
// A missing file is an empty history, not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, parseHistoryLine(line))
	}

	return scanner.Err()
}

// parseHistoryLine decodes one persisted line. Lines without a mode prefix
// (written by older versions) are eval entries.
func parseHistoryLine(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, prefixEval); ok {
		return HistoryEntry{Line: s, Mode: modeEval}
	}

	if s, ok := strings.CutPrefix(line, prefixCtrl); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	return HistoryEntry{Line: line, Mode: modeEval}
}

// WriteWithMode appends a new entry to the history with the specified mode.
// An earlier duplicate (same line and mode) is removed so the entry moves to
// the most-recent position.
func (h *History) WriteWithMode(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	added := HistoryEntry{Line: entry, Mode: mode}

	// Skip if same as last entry (both line and mode).
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == added {
		return len(entry), nil
	}

	at := slices.Index(h.entries, added)
	if at >= 0 {
		h.entries = slices.Delete(h.entries, at, at+1)
	}

	h.entries = append(h.entries, added)

	// Removing a duplicate invalidates the file tail, so rewrite it all.
	if at >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(added.prefix() + added.Line + "\n")
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	totalBytes := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(entry.prefix() + entry.Line + "\n")
		if err != nil {
			return totalBytes, err
		}

		totalBytes += n
	}

	return totalBytes, nil
}
