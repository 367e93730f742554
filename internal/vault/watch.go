package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeOp is the kind of document change observed on disk.
type ChangeOp int

const (
	OpCreate ChangeOp = iota
	OpModify
	OpRename
	OpDelete
)

func (op ChangeOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpRename:
		return "rename"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a single document change notification.
type Change struct {
	Op ChangeOp
	ID string
}

// OnChange registers a callback invoked for every markdown document
// change. Callbacks run on the watcher goroutine and should hand off
// quickly (the ledger's debounced refresh trigger is the intended
// consumer).
func (s *Store) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Watch starts watching the vault for document changes. Notifications are
// filtered to markdown files; hidden directories are ignored.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	s.watcher = watcher

	if err := s.addWatchDirs(s.root); err != nil {
		s.watcher.Close()
		s.watcher = nil
		return fmt.Errorf("add directories to watcher: %w", err)
	}

	go s.watchLoop()
	return nil
}

// Close stops the file watcher. Safe to call when Watch was never started.
func (s *Store) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// addWatchDirs recursively adds directories to the watcher, skipping
// hidden ones.
func (s *Store) addWatchDirs(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return s.watcher.Add(path)
	})
}

func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Printf("watcher error: %v", err)
		}
	}
}

func (s *Store) handleEvent(event fsnotify.Event) {
	// New directories need to join the watch set so documents created
	// inside them are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(info.Name(), ".") {
				if err := s.addWatchDirs(event.Name); err != nil {
					s.logger.Printf("Warning: watching new directory %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	if !isMarkdown(event.Name) {
		return
	}
	if strings.Contains(filepath.ToSlash(event.Name), "/.") {
		return
	}

	rel, err := filepath.Rel(s.root, event.Name)
	if err != nil {
		s.logger.Printf("Warning: relative path for %s: %v", event.Name, err)
		return
	}
	id := filepath.ToSlash(rel)

	var op ChangeOp
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	default:
		return // chmod etc. do not change document text
	}

	s.mu.Lock()
	callbacks := make([]func(Change), len(s.onChange))
	copy(callbacks, s.onChange)
	s.mu.Unlock()

	change := Change{Op: op, ID: id}
	for _, fn := range callbacks {
		fn(change)
	}
}
