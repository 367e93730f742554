// Package vault is the document store: a tree of markdown files on disk
// with change notifications. It owns reading and writing whole-document
// text; nothing here interprets checklist lines.
package vault

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
)

// ErrPathEscape is returned when a document id resolves outside the vault.
var ErrPathEscape = fmt.Errorf("path escapes vault boundary")

// lockName is the vault-wide write lock file. Writes across processes
// serialize on it, so two concurrent read-modify-write cycles cannot
// interleave on the same document.
const lockName = ".taskledger.lock"

// Store reads and writes markdown documents under a root directory.
// Document ids are slash-separated paths relative to the root.
type Store struct {
	root    string
	logger  *log.Logger
	watcher *fsnotify.Watcher

	mu       sync.Mutex // guards onChange registration
	onChange []func(Change)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger overrides the default stderr logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		root:   dir,
		logger: log.New(os.Stderr, "[vault] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the vault root directory.
func (s *Store) Root() string {
	return s.root
}

// ListDocuments walks the vault and returns the ids of all markdown
// documents. Hidden directories and unreadable entries are skipped.
func (s *Store) ListDocuments() ([]string, error) {
	var ids []string
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(info.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault: %w", err)
	}
	return ids, nil
}

// ReadText returns the full text of a document.
func (s *Store) ReadText(id string) (string, error) {
	path, err := s.safePath(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", id, err)
	}
	return string(data), nil
}

// WriteText replaces the full text of a document. The write is atomic
// (temp file + rename). Callers doing a read-modify-write cycle hold the
// vault lock across the whole cycle; WriteText itself does not acquire
// it, so it can run under a lock already held.
func (s *Store) WriteText(id, text string) error {
	path, err := s.safePath(id)
	if err != nil {
		return err
	}
	return atomicWrite(path, text)
}

// Lock acquires the vault-wide write lock and returns its release func.
// Callers doing a read-modify-write cycle hold it across the whole cycle.
func (s *Store) Lock() (func(), error) {
	fl := flock.New(filepath.Join(s.root, lockName))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking vault: %w", err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Printf("Warning: releasing vault lock: %v", err)
		}
	}, nil
}

// safePath resolves a document id against the root and rejects ids that
// escape the vault boundary.
func (s *Store) safePath(id string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.root, filepath.FromSlash(id)))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("resolve vault root: %w", err)
	}
	if abs != rootAbs && !strings.HasPrefix(abs, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, id)
	}
	return abs, nil
}

// atomicWrite writes content to a file via a temp file rename.
func atomicWrite(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func isMarkdown(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown")
}
