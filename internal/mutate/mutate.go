// Package mutate writes partial field updates back to the exact source
// line of a task without disturbing the rest of the document.
package mutate

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/sauerdaniel/taskledger/internal/codec"
	"github.com/sauerdaniel/taskledger/internal/task"
)

// taskLine mirrors the scanner's checklist grammar; the recorded line
// must still match it or the update is dropped.
var taskLine = regexp.MustCompile(`^([ \t]*)([-*]) \[( |[xX])\] (.*)$`)

// Store is the document store surface the writer needs. Lock serializes
// the whole read-modify-write cycle against concurrent writers.
type Store interface {
	ReadText(id string) (string, error)
	WriteText(id, text string) error
	Lock() (func(), error)
}

// Writer applies partial updates to task source lines.
type Writer struct {
	store  Store
	logger *log.Logger
}

// NewWriter creates a mutation writer over the given store.
func NewWriter(store Store, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(os.Stderr, "[mutate] ", log.LstdFlags)
	}
	return &Writer{store: store, logger: logger}
}

// Apply rewrites the task's source line with the update merged over the
// line's current annotations. The document is re-read and the line
// re-parsed first, so concurrent external edits to fields outside the
// update survive. If the recorded line no longer looks like a checklist
// line the document changed underneath the caller: the update is dropped
// silently (logged, nil error) and the caller should rescan and retry
// from a fresh task reference.
func (w *Writer) Apply(t *task.Task, u codec.Update) error {
	unlock, err := w.store.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	text, err := w.store.ReadText(t.Document)
	if err != nil {
		return fmt.Errorf("reading %s: %w", t.Document, err)
	}

	lines := strings.Split(text, "\n")
	idx := t.Line - 1
	if idx < 0 || idx >= len(lines) {
		w.logger.Printf("Warning: %s:%d no longer exists, update dropped", t.Document, t.Line)
		return nil
	}

	line := lines[idx]
	body := strings.TrimSuffix(line, "\r")
	hadCR := len(body) != len(line)

	m := taskLine.FindStringSubmatch(body)
	if m == nil {
		w.logger.Printf("Warning: %s:%d is no longer a checklist line, update dropped", t.Document, t.Line)
		return nil
	}

	box := m[3]
	if u.Completed != nil {
		if *u.Completed {
			box = "x"
		} else {
			box = " "
		}
	}

	rebuilt := m[1] + m[2] + " [" + box + "] " + codec.Serialize(m[4], u)
	rebuilt = strings.TrimRight(rebuilt, " \t")
	if hadCR {
		rebuilt += "\r"
	}

	if rebuilt == line {
		return nil // nothing changed, skip the write
	}

	lines[idx] = rebuilt
	return w.store.WriteText(t.Document, strings.Join(lines, "\n"))
}
