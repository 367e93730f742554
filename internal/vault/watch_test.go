package vault

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestHandleEventDispatch(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	var got []Change
	s.OnChange(func(c Change) { got = append(got, c) })
	s.OnChange(func(c Change) { got = append(got, c) })

	s.handleEvent(fsnotify.Event{
		Name: filepath.Join(root, "inbox.md"),
		Op:   fsnotify.Write,
	})

	want := []Change{
		{Op: OpModify, ID: "inbox.md"},
		{Op: OpModify, ID: "inbox.md"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("changes = %+v, want both callbacks invoked with %+v", got, want[0])
	}
}

func TestHandleEventFiltersNonDocuments(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	var got []Change
	s.OnChange(func(c Change) { got = append(got, c) })

	events := []fsnotify.Event{
		{Name: filepath.Join(root, "image.png"), Op: fsnotify.Write},
		{Name: filepath.Join(root, ".obsidian", "workspace.md"), Op: fsnotify.Write},
		{Name: filepath.Join(root, "inbox.md"), Op: fsnotify.Chmod},
	}
	for _, ev := range events {
		s.handleEvent(ev)
	}

	if len(got) != 0 {
		t.Errorf("changes = %+v, want none for non-document events", got)
	}
}

func TestHandleEventOps(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want ChangeOp
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpModify},
		{fsnotify.Rename, OpRename},
		{fsnotify.Remove, OpDelete},
	}

	root := t.TempDir()
	s := New(root)

	var got []Change
	s.OnChange(func(c Change) { got = append(got, c) })

	for _, tt := range tests {
		got = got[:0]
		s.handleEvent(fsnotify.Event{Name: filepath.Join(root, "a.md"), Op: tt.op})
		if len(got) != 1 || got[0].Op != tt.want {
			t.Errorf("op %v: changes = %+v, want one %v", tt.op, got, tt.want)
		}
	}
}
