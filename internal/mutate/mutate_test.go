package mutate

import (
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/sauerdaniel/taskledger/internal/codec"
	"github.com/sauerdaniel/taskledger/internal/task"
)

type memStore struct {
	docs    map[string]string
	writes  int
	locks   int
	readErr error
}

func (s *memStore) ReadText(id string) (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	text, ok := s.docs[id]
	if !ok {
		return "", fmt.Errorf("no such document %q", id)
	}
	return text, nil
}

func (s *memStore) WriteText(id, text string) error {
	s.docs[id] = text
	s.writes++
	return nil
}

func (s *memStore) Lock() (func(), error) {
	s.locks++
	return func() {}, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestWriter(store Store) *Writer {
	return NewWriter(store, log.New(io.Discard, "", 0))
}

func TestApplyRewritesOnlyTargetLine(t *testing.T) {
	store := &memStore{docs: map[string]string{
		"notes.md": "# Notes\n- [ ] Call plumber projekt:: Bygget\nTrailing prose\n",
	}}
	w := newTestWriter(store)

	err := w.Apply(&task.Task{Document: "notes.md", Line: 2}, codec.Update{
		Due: strPtr("2024-06-09"),
	})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	want := "# Notes\n- [ ] Call plumber projekt:: Bygget due:: 2024-06-09\nTrailing prose\n"
	if store.docs["notes.md"] != want {
		t.Errorf("document = %q, want %q", store.docs["notes.md"], want)
	}
	if store.locks != 1 {
		t.Errorf("lock taken %d times, want 1", store.locks)
	}
}

func TestApplyFieldSemantics(t *testing.T) {
	tests := []struct {
		name string
		line string
		u    codec.Update
		want string
	}{
		{
			name: "set title keeps annotations",
			line: "- [ ] Old due:: 2024-06-01 #x",
			u:    codec.Update{Title: strPtr("New")},
			want: "- [ ] New due:: 2024-06-01 #x",
		},
		{
			name: "clear field",
			line: "- [ ] A project:: P due:: 2024-06-01",
			u:    codec.Update{Due: strPtr("")},
			want: "- [ ] A project:: P",
		},
		{
			name: "mark done",
			line: "- [ ] A",
			u:    codec.Update{Completed: boolPtr(true)},
			want: "- [x] A",
		},
		{
			name: "reopen lowers checkbox",
			line: "- [X] A",
			u:    codec.Update{Completed: boolPtr(false)},
			want: "- [ ] A",
		},
		{
			name: "checkbox case preserved without completion update",
			line: "- [X] A",
			u:    codec.Update{Due: strPtr("2024-06-01")},
			want: "- [X] A due:: 2024-06-01",
		},
		{
			name: "indent and bullet preserved",
			line: "  * [ ] A",
			u:    codec.Update{Due: strPtr("2024-06-01")},
			want: "  * [ ] A due:: 2024-06-01",
		},
		{
			name: "wiki style preserved",
			line: "- [ ] A project:: [[Old]]",
			u:    codec.Update{Project: strPtr("New")},
			want: "- [ ] A project:: [[New]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{docs: map[string]string{"d.md": tt.line + "\n"}}
			w := newTestWriter(store)

			if err := w.Apply(&task.Task{Document: "d.md", Line: 1}, tt.u); err != nil {
				t.Fatalf("Apply() error: %v", err)
			}
			got := strings.TrimSuffix(store.docs["d.md"], "\n")
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyStaleLocationDropped(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{"line past end", "- [ ] A\n", 9},
		{"line is prose now", "not a task anymore\n", 1},
		{"line is heading", "# heading\n- [ ] A\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{docs: map[string]string{"d.md": tt.doc}}
			w := newTestWriter(store)

			err := w.Apply(&task.Task{Document: "d.md", Line: tt.line}, codec.Update{
				Due: strPtr("2024-06-01"),
			})
			if err != nil {
				t.Fatalf("Apply() error: %v, want nil for stale location", err)
			}
			if store.writes != 0 {
				t.Errorf("document written %d times, want 0", store.writes)
			}
			if store.docs["d.md"] != tt.doc {
				t.Errorf("document changed: %q", store.docs["d.md"])
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	store := &memStore{docs: map[string]string{"d.md": "- [ ] A projekt:: P\n"}}
	w := newTestWriter(store)
	u := codec.Update{Due: strPtr("2024-06-09")}
	ref := &task.Task{Document: "d.md", Line: 1}

	if err := w.Apply(ref, u); err != nil {
		t.Fatal(err)
	}
	after := store.docs["d.md"]

	if err := w.Apply(ref, u); err != nil {
		t.Fatal(err)
	}
	if store.docs["d.md"] != after {
		t.Errorf("second apply changed the document: %q vs %q", store.docs["d.md"], after)
	}
	if store.writes != 1 {
		t.Errorf("document written %d times, want 1 (no-op writes skipped)", store.writes)
	}
}

func TestApplyPreservesCRLF(t *testing.T) {
	store := &memStore{docs: map[string]string{"d.md": "- [ ] A\r\nrest\r\n"}}
	w := newTestWriter(store)

	err := w.Apply(&task.Task{Document: "d.md", Line: 1}, codec.Update{
		Completed: boolPtr(true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := store.docs["d.md"], "- [x] A\r\nrest\r\n"; got != want {
		t.Errorf("document = %q, want %q", got, want)
	}
}

func TestApplyReadErrorPropagates(t *testing.T) {
	store := &memStore{docs: map[string]string{}, readErr: fmt.Errorf("disk gone")}
	w := newTestWriter(store)

	err := w.Apply(&task.Task{Document: "d.md", Line: 1}, codec.Update{})
	if err == nil {
		t.Fatal("Apply() = nil, want read error")
	}
}
