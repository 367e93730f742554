// Package ledger owns the full collection of task entities extracted
// from every document in the vault. The collection is re-derived from
// text on every refresh rather than mutated in place: the text is the
// source of truth, the ledger only a view of it.
package ledger

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sauerdaniel/taskledger/internal/scan"
	"github.com/sauerdaniel/taskledger/internal/task"
)

// Source is the document store surface the ledger consumes.
type Source interface {
	ListDocuments() ([]string, error)
	ReadText(id string) (string, error)
}

// Ledger holds the most recent task collection across all documents.
type Ledger struct {
	source   Source
	logger   *log.Logger
	debounce *Debouncer

	mu        sync.RWMutex
	tasks     []task.Task
	consumers map[string]func([]task.Task)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger overrides the default stderr logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithQuietPeriod overrides the debounce quiet period.
func WithQuietPeriod(quiet time.Duration) Option {
	return func(l *Ledger) { l.debounce = NewDebouncer(quiet, l.refreshQuietly) }
}

// New creates a ledger over the given source. The collection is empty
// until the first Refresh.
func New(source Source, opts ...Option) *Ledger {
	l := &Ledger{
		source:    source,
		logger:    log.New(os.Stderr, "[ledger] ", log.LstdFlags),
		consumers: make(map[string]func([]task.Task)),
	}
	l.debounce = NewDebouncer(DefaultQuietPeriod, l.refreshQuietly)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debouncer exposes the refresh debouncer so tests can inject a timer.
func (l *Ledger) Debouncer() *Debouncer {
	return l.debounce
}

// Refresh re-scans every document and replaces the task collection
// wholesale. A read failure on one document is logged and that
// document's tasks are simply absent for this pass; the refresh itself
// still succeeds. Consumers are notified synchronously afterwards.
func (l *Ledger) Refresh() error {
	ids, err := l.source.ListDocuments()
	if err != nil {
		return err
	}

	var tasks []task.Task
	for _, id := range ids {
		text, err := l.source.ReadText(id)
		if err != nil {
			l.logger.Printf("Warning: reading %s: %v (document skipped this pass)", id, err)
			continue
		}
		tasks = append(tasks, scan.Scan(id, text)...)
	}

	// The old collection stays visible to readers until the new one is
	// fully built; the swap is the only write.
	l.mu.Lock()
	l.tasks = tasks
	consumers := make([]func([]task.Task), 0, len(l.consumers))
	for _, fn := range l.consumers {
		consumers = append(consumers, fn)
	}
	l.mu.Unlock()

	snapshot := append([]task.Task(nil), tasks...)
	for _, fn := range consumers {
		fn(snapshot)
	}
	return nil
}

// RequestRefresh schedules a debounced refresh. Bursts of change
// notifications collapse into one rescan.
func (l *Ledger) RequestRefresh() {
	l.debounce.Trigger()
}

// Stop tears down the debounce timer.
func (l *Ledger) Stop() {
	l.debounce.Stop()
}

// Tasks returns a copy of the current task collection.
func (l *Ledger) Tasks() []task.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]task.Task(nil), l.tasks...)
}

// Subscribe registers a consumer notified after every successful refresh
// with the fresh collection. Returns a token for Unsubscribe.
func (l *Ledger) Subscribe(fn func([]task.Task)) string {
	token := uuid.New().String()
	l.mu.Lock()
	l.consumers[token] = fn
	l.mu.Unlock()
	return token
}

// Unsubscribe removes a consumer registered with Subscribe.
func (l *Ledger) Unsubscribe(token string) {
	l.mu.Lock()
	delete(l.consumers, token)
	l.mu.Unlock()
}

// refreshQuietly is the debounce callback: refresh failures are logged,
// never raised, so a transient listing error cannot kill the watch loop.
func (l *Ledger) refreshQuietly() {
	if err := l.Refresh(); err != nil {
		l.logger.Printf("Warning: refresh failed: %v", err)
	}
}
